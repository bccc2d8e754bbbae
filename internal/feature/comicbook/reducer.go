// Package comicbook keeps the library's comic list, loaded in batches and
// kept current by server pushes.
package comicbook

import (
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/store"
)

// FeatureKey names the slice.
const FeatureKey = "comic-book-list"

// State is the comic list slice. ComicBooks holds each id at most once.
type State struct {
	Busy        bool
	ComicBooks  []domain.ComicBook
	LastID      int64
	LastPayload bool
}

// Feature registers the slice with a store.
var Feature = store.Feature[*State]{
	Key:     FeatureKey,
	Initial: func() *State { return &State{} },
	Reduce:  reduce,
}

func reduce(s *State, action store.Action) *State {
	switch a := action.(type) {
	case LoadComicBooks:
		next := *s
		next.Busy = true
		return &next
	case ComicBooksReceived:
		return &State{
			Busy:        !a.LastPayload && len(a.ComicBooks) > 0,
			ComicBooks:  domain.Upsert(s.ComicBooks, domain.ComicBookID, a.ComicBooks...),
			LastID:      a.LastID,
			LastPayload: a.LastPayload,
		}
	case LoadComicBooksFailed:
		next := *s
		next.Busy = false
		return &next
	case ComicBookUpdated:
		next := *s
		next.ComicBooks = domain.Upsert(s.ComicBooks, domain.ComicBookID, a.ComicBook)
		return &next
	case ComicBookRemoved:
		next := *s
		next.ComicBooks = domain.Remove(s.ComicBooks, domain.ComicBookID, a.ComicBook.ID)
		return &next
	case ResetComicBooks:
		return &State{}
	}
	return s
}
