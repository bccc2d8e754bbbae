package readinglist

import (
	"sort"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/store"
)

var (
	// SelectState returns the whole slice.
	SelectState = store.Select(Feature, func(s *State) *State { return s })

	// SelectLists returns the lists sorted by name.
	SelectLists = store.Select(Feature, func(s *State) []domain.ReadingList {
		out := append([]domain.ReadingList(nil), s.Lists...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	})
)
