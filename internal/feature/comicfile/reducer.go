// Package comicfile drives the comic import workflow: listing files in an
// import directory, selecting them and importing the selection.
package comicfile

import (
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/store"
)

// FeatureKey names the slice.
const FeatureKey = "comic-files"

// State is the import slice. Selections never holds duplicates.
type State struct {
	Busy       bool
	Importing  bool
	Directory  string
	Groups     []domain.ComicFileGroup
	Selections []string
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
	case LoadComicFiles:
		next.Busy = true
		next.Directory = a.Directory
	case ComicFilesLoaded:
		next.Busy = false
		next.Groups = a.Groups
		present := make(map[string]bool)
		for _, f := range domain.Filenames(a.Groups) {
			present[f] = true
		}
		next.Selections = nil
		for _, f := range s.Selections {
			if present[f] {
				next.Selections = append(next.Selections, f)
			}
		}
	case LoadComicFilesFailed:
		next.Busy = false
	case SetComicFilesSelectedState:
		next.Selections = domain.Toggle(s.Selections, a.Selected, a.Filenames...)
	case ClearComicFileSelections:
		next.Selections = nil
	case ImportComicFiles:
		next.Importing = true
	case ComicFilesImported:
		next.Importing = false
		next.Selections = domain.Toggle(s.Selections, false, a.Filenames...)
	case ImportComicFilesFailed:
		next.Importing = false
	default:
		return s
	}
	return &next
}
