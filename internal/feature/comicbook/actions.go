package comicbook

import "github.com/comixed/comixed-client/internal/domain"

// LoadComicBooks requests up to MaxRecords comics with ids after LastID.
type LoadComicBooks struct {
	MaxRecords int
	LastID     int64
}

// ComicBooksReceived carries one batch. MaxRecords echoes the request so
// the next batch can be requested with the same size.
type ComicBooksReceived struct {
	ComicBooks  []domain.ComicBook
	LastID      int64
	LastPayload bool
	MaxRecords  int
}

// LoadComicBooksFailed reports a failed batch.
type LoadComicBooksFailed struct {
	Err error
}

// ComicBookUpdated is pushed when a comic changes.
type ComicBookUpdated struct {
	ComicBook domain.ComicBook
}

// ComicBookRemoved is pushed when a comic is deleted.
type ComicBookRemoved struct {
	ComicBook domain.ComicBook
}

// ResetComicBooks empties the slice.
type ResetComicBooks struct{}

func (LoadComicBooks) Type() string       { return "[Comic Book List] load batch" }
func (ComicBooksReceived) Type() string   { return "[Comic Book List] batch received" }
func (LoadComicBooksFailed) Type() string { return "[Comic Book List] load batch failed" }
func (ComicBookUpdated) Type() string     { return "[Comic Book List] comic updated" }
func (ComicBookRemoved) Type() string     { return "[Comic Book List] comic removed" }
func (ResetComicBooks) Type() string      { return "[Comic Book List] reset" }
