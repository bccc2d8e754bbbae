package selection

import (
	"slices"

	"github.com/comixed/comixed-client/pkg/store"
)

var (
	// SelectState returns the whole slice.
	SelectState = store.Select(Feature, func(s *State) *State { return s })

	// SelectIDs returns the selected ids.
	SelectIDs = store.Select(Feature, func(s *State) []int64 { return s.IDs })

	// SelectCount returns how many comics are selected.
	SelectCount = store.Derive(SelectIDs, func(ids []int64) int { return len(ids) })
)

// IsSelected reports whether id is in the selection.
func IsSelected(st store.State, id int64) bool {
	return slices.Contains(SelectIDs.Get(st), id)
}
