package domain

// ComicBookBatch is one page of the comic list.
type ComicBookBatch struct {
	ComicBooks  []ComicBook `json:"comicBooks"`
	LastID      int64       `json:"lastId"`
	LastPayload bool        `json:"lastPayload"`
}

// ScrapeResult is the server's answer to a scrape request.
type ScrapeResult struct {
	Success   bool       `json:"success"`
	ComicBook *ComicBook `json:"comicBook,omitempty"`
}

// MultiBookPage is one page of comics queued for multi-book scraping.
type MultiBookPage struct {
	PageNumber  int         `json:"pageNumber"`
	TotalComics int         `json:"totalComics"`
	ComicBooks  []ComicBook `json:"comicBooks"`
}

// ImportResult is the server's answer to an import request.
type ImportResult struct {
	Success bool `json:"success"`
}
