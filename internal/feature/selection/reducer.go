// Package selection tracks which comic books the user has selected.
package selection

import "github.com/comixed/comixed-client/pkg/store"

// FeatureKey names the slice.
const FeatureKey = "comic-book-selection"

// State is the selection slice.
type State struct {
	Busy bool
	IDs  []int64
}

// Feature registers the slice with a store.
var Feature = store.Feature[*State]{
	Key:     FeatureKey,
	Initial: func() *State { return &State{} },
	Reduce:  reduce,
}

func reduce(s *State, action store.Action) *State {
	switch a := action.(type) {
	case LoadComicBookSelections, AddSingleSelection, RemoveSingleSelection, ClearSelections:
		return &State{Busy: true, IDs: s.IDs}
	case ComicBookSelectionsLoaded:
		return &State{IDs: a.IDs}
	case LoadComicBookSelectionsFailed, UpdateComicBookSelectionsFailed:
		return &State{IDs: s.IDs}
	case ComicBookSelectionsUpdated:
		return &State{Busy: s.Busy, IDs: a.IDs}
	}
	return s
}
