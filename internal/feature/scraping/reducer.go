// Package scraping drives metadata lookups for single comics and the
// multi-book scraping queue.
package scraping

import (
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/store"
)

// FeatureKey names the slice.
const FeatureKey = "scraping"

// MultiBookState is the multi-book scraping queue. Current is the comic
// being scraped, always one of Comics when set.
type MultiBookState struct {
	Running     bool
	PageSize    int
	PageNumber  int
	TotalComics int
	Comics      []domain.ComicBook
	Current     *domain.ComicBook
}

// State is the scraping slice.
type State struct {
	Busy      bool
	Volumes   []domain.Volume
	Scraped   *domain.ComicBook
	MultiBook MultiBookState
}

// Feature registers the slice with a store.
var Feature = store.Feature[*State]{
	Key:     FeatureKey,
	Initial: func() *State { return &State{} },
	Reduce:  reduce,
}

func reduce(s *State, action store.Action) *State {
	next := *s
	switch a := action.(type) {
	case LoadScrapingVolumes:
		next.Busy = true
		next.Volumes = nil
	case ScrapingVolumesLoaded:
		next.Busy = false
		next.Volumes = a.Volumes
	case ScrapeComic:
		next.Busy = true
	case ComicScraped:
		c := a.ComicBook
		next.Busy = false
		next.Scraped = &c
	case LoadScrapingVolumesFailed, ScrapeComicFailed, MultiBookScrapingFailed:
		next.Busy = false
	case StartMultiBookScraping:
		next.Busy = true
		next.MultiBook = MultiBookState{PageSize: a.PageSize}
	case LoadMultiBookScrapingPage:
		next.Busy = true
		next.MultiBook.PageSize = a.PageSize
		next.MultiBook.PageNumber = a.PageNumber
	case MultiBookScrapingPageLoaded:
		next.Busy = false
		next.MultiBook = MultiBookState{
			Running:     true,
			PageSize:    s.MultiBook.PageSize,
			PageNumber:  a.PageNumber,
			TotalComics: a.TotalComics,
			Comics:      a.Comics,
			Current:     first(a.Comics),
		}
	case SkipMultiBookComic:
		next.MultiBook = dropFromQueue(s.MultiBook, a.ComicBook.ID)
	case MultiBookComicScraped:
		next.MultiBook = dropFromQueue(s.MultiBook, a.ComicBookID)
	case StopMultiBookScraping:
		next.Busy = false
		next.MultiBook = MultiBookState{}
	default:
		return s
	}
	return &next
}

func dropFromQueue(m MultiBookState, id int64) MultiBookState {
	before := len(m.Comics)
	m.Comics = domain.Remove(m.Comics, domain.ComicBookID, id)
	if removed := before - len(m.Comics); removed > 0 {
		m.TotalComics -= removed
		if m.TotalComics < 0 {
			m.TotalComics = 0
		}
	}
	if m.Current == nil || m.Current.ID == id {
		m.Current = first(m.Comics)
	}
	return m
}

func first(comics []domain.ComicBook) *domain.ComicBook {
	if len(comics) == 0 {
		return nil
	}
	c := comics[0]
	return &c
}
