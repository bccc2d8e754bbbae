package scraping

import (
	"context"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

// Message keys.
const (
	KeyLoadVolumesFailed  = "scraping.load-volumes-failed"
	KeyScrapeComicFailed  = "scraping.scrape-comic-failed"
	KeyScrapeComicSuccess = "scraping.scrape-comic-success"
	KeyMultiBookFailed    = "scraping.multi-book-failed"
)

// Service is the metadata REST surface.
type Service interface {
	LoadVolumes(ctx context.Context, source, series string, maxRecords int, skipCache bool) ([]domain.Volume, error)
	ScrapeComic(ctx context.Context, source, issueID string, comicBookID int64, skipCache bool) (domain.ScrapeResult, error)
	StartMultiBookScraping(ctx context.Context, pageSize int) (domain.MultiBookPage, error)
	LoadMultiBookScrapingPage(ctx context.Context, pageSize, pageNumber int) (domain.MultiBookPage, error)
}

func pageLoaded(p domain.MultiBookPage) store.Action {
	return MultiBookScrapingPageLoaded{Comics: p.ComicBooks, PageNumber: p.PageNumber, TotalComics: p.TotalComics}
}

func multiBookFailed(err error) store.Action { return MultiBookScrapingFailed{Err: err} }

// nextPage requests the following page once the loaded one is drained and
// comics remain queued on the server.
func nextPage(st store.State) store.Action {
	m := SelectMultiBook.Get(st)
	if !m.Running || len(m.Comics) > 0 || m.TotalComics <= 0 {
		return nil
	}
	return LoadMultiBookScrapingPage{PageSize: m.PageSize, PageNumber: m.PageNumber + 1}
}

// Effects returns the scraping pipelines bound to svc.
//
// A scrape answered with success=false is a logical failure: it dispatches
// ScrapeComicFailed without an alert. Draining the loaded queue page while
// comics remain requests the next page.
func Effects(svc Service) []effect.Effect {
	return []effect.Effect{
		&effect.Pipeline[LoadScrapingVolumes, []domain.Volume]{
			Operation: "load-scraping-volumes",
			Call: func(ctx context.Context, a LoadScrapingVolumes) ([]domain.Volume, error) {
				return svc.LoadVolumes(ctx, a.Source, a.Series, a.MaxRecords, a.SkipCache)
			},
			Success: func(_ LoadScrapingVolumes, v []domain.Volume) store.Action {
				return ScrapingVolumesLoaded{Volumes: v}
			},
			Failure: func(_ LoadScrapingVolumes, err error) store.Action {
				return LoadScrapingVolumesFailed{Err: err}
			},
			AlertKey:    KeyLoadVolumesFailed,
			AlertParams: func(a LoadScrapingVolumes) map[string]any { return map[string]any{"series": a.Series} },
		},
		&effect.Pipeline[ScrapeComic, domain.ScrapeResult]{
			Operation: "scrape-comic",
			Call: func(ctx context.Context, a ScrapeComic) (domain.ScrapeResult, error) {
				return svc.ScrapeComic(ctx, a.Source, a.IssueID, a.ComicBookID, a.SkipCache)
			},
			Verify: func(r domain.ScrapeResult) error {
				if !r.Success || r.ComicBook == nil {
					return domain.ErrNotSuccessful
				}
				return nil
			},
			Success: func(a ScrapeComic, r domain.ScrapeResult) store.Action {
				return ComicScraped{ComicBook: *r.ComicBook, MultiBook: a.MultiBook}
			},
			Failure: func(a ScrapeComic, err error) store.Action {
				return ScrapeComicFailed{ComicBookID: a.ComicBookID, Err: err}
			},
			AlertKey:   KeyScrapeComicFailed,
			SuccessKey: KeyScrapeComicSuccess,
		},
		&effect.Map[ComicScraped]{
			Label: "advance-multi-book-queue",
			Fn: func(a ComicScraped) store.Action {
				if !a.MultiBook {
					return nil
				}
				return MultiBookComicScraped{ComicBookID: a.ComicBook.ID}
			},
		},
		&effect.Follow[MultiBookComicScraped]{
			Label: "page-multi-book-queue-after-scrape",
			Fn:    func(_ MultiBookComicScraped, st store.State) store.Action { return nextPage(st) },
		},
		&effect.Follow[SkipMultiBookComic]{
			Label: "page-multi-book-queue-after-skip",
			Fn:    func(_ SkipMultiBookComic, st store.State) store.Action { return nextPage(st) },
		},
		&effect.Pipeline[StartMultiBookScraping, domain.MultiBookPage]{
			Operation: "start-multi-book-scraping",
			Call: func(ctx context.Context, a StartMultiBookScraping) (domain.MultiBookPage, error) {
				return svc.StartMultiBookScraping(ctx, a.PageSize)
			},
			Success:  func(_ StartMultiBookScraping, p domain.MultiBookPage) store.Action { return pageLoaded(p) },
			Failure:  func(_ StartMultiBookScraping, err error) store.Action { return multiBookFailed(err) },
			AlertKey: KeyMultiBookFailed,
		},
		&effect.Pipeline[LoadMultiBookScrapingPage, domain.MultiBookPage]{
			Operation: "load-multi-book-scraping-page",
			Call: func(ctx context.Context, a LoadMultiBookScrapingPage) (domain.MultiBookPage, error) {
				return svc.LoadMultiBookScrapingPage(ctx, a.PageSize, a.PageNumber)
			},
			Success:  func(_ LoadMultiBookScrapingPage, p domain.MultiBookPage) store.Action { return pageLoaded(p) },
			Failure:  func(_ LoadMultiBookScrapingPage, err error) store.Action { return multiBookFailed(err) },
			AlertKey: KeyMultiBookFailed,
		},
	}
}
