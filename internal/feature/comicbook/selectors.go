package comicbook

import (
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/store"
)

var (
	// SelectState returns the whole slice.
	SelectState = store.Select(Feature, func(s *State) *State { return s })

	// SelectComicBooks returns the loaded comics.
	SelectComicBooks = store.Select(Feature, func(s *State) []domain.ComicBook { return s.ComicBooks })

	// SelectCount returns how many comics are loaded.
	SelectCount = store.Derive(SelectComicBooks, func(c []domain.ComicBook) int { return len(c) })

	// SelectByID indexes the loaded comics by id.
	SelectByID = store.Derive(SelectComicBooks, func(comics []domain.ComicBook) map[int64]domain.ComicBook {
		out := make(map[int64]domain.ComicBook, len(comics))
		for _, c := range comics {
			out[c.ID] = c
		}
		return out
	})
)
