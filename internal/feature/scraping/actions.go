package scraping

import "github.com/comixed/comixed-client/internal/domain"

// LoadScrapingVolumes searches a metadata source for a series.
type LoadScrapingVolumes struct {
	Source     string
	Series     string
	MaxRecords int
	SkipCache  bool
}

// ScrapingVolumesLoaded carries the matching volumes.
type ScrapingVolumesLoaded struct {
	Volumes []domain.Volume
}

// LoadScrapingVolumesFailed reports a failed search.
type LoadScrapingVolumesFailed struct {
	Err error
}

// ScrapeComic applies an issue's metadata to a comic. MultiBook marks
// scrapes made from the multi-book queue.
type ScrapeComic struct {
	Source      string
	IssueID     string
	ComicBookID int64
	SkipCache   bool
	MultiBook   bool
}

// ComicScraped carries the updated comic.
type ComicScraped struct {
	ComicBook domain.ComicBook
	MultiBook bool
}

// ScrapeComicFailed reports a failed scrape.
type ScrapeComicFailed struct {
	ComicBookID int64
	Err         error
}

// StartMultiBookScraping queues the selected comics for scraping.
type StartMultiBookScraping struct {
	PageSize int
}

// LoadMultiBookScrapingPage loads one page of the queue.
type LoadMultiBookScrapingPage struct {
	PageSize   int
	PageNumber int
}

// MultiBookScrapingPageLoaded carries one page of the queue.
type MultiBookScrapingPageLoaded struct {
	Comics      []domain.ComicBook
	PageNumber  int
	TotalComics int
}

// MultiBookScrapingFailed reports a failed start or page load.
type MultiBookScrapingFailed struct {
	Err error
}

// SkipMultiBookComic drops a comic from the queue without scraping it.
type SkipMultiBookComic struct {
	ComicBook domain.ComicBook
}

// MultiBookComicScraped drops a scraped comic from the queue.
type MultiBookComicScraped struct {
	ComicBookID int64
}

// StopMultiBookScraping abandons the queue.
type StopMultiBookScraping struct{}

func (LoadScrapingVolumes) Type() string         { return "[Scraping] load volumes" }
func (ScrapingVolumesLoaded) Type() string       { return "[Scraping] volumes loaded" }
func (LoadScrapingVolumesFailed) Type() string   { return "[Scraping] load volumes failed" }
func (ScrapeComic) Type() string                 { return "[Scraping] scrape comic" }
func (ComicScraped) Type() string                { return "[Scraping] comic scraped" }
func (ScrapeComicFailed) Type() string           { return "[Scraping] scrape comic failed" }
func (StartMultiBookScraping) Type() string      { return "[Multi-Book Scraping] start" }
func (LoadMultiBookScrapingPage) Type() string   { return "[Multi-Book Scraping] load page" }
func (MultiBookScrapingPageLoaded) Type() string { return "[Multi-Book Scraping] page loaded" }
func (MultiBookScrapingFailed) Type() string     { return "[Multi-Book Scraping] failed" }
func (SkipMultiBookComic) Type() string          { return "[Multi-Book Scraping] skip comic" }
func (MultiBookComicScraped) Type() string       { return "[Multi-Book Scraping] comic scraped" }
func (StopMultiBookScraping) Type() string       { return "[Multi-Book Scraping] stop" }
