package comicfile

import (
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/store"
)

var (
	// SelectState returns the whole slice.
	SelectState = store.Select(Feature, func(s *State) *State { return s })

	// SelectSelections returns the selected filenames.
	SelectSelections = store.Select(Feature, func(s *State) []string { return s.Selections })

	// SelectFiles flattens every listed file.
	SelectFiles = store.Select(Feature, func(s *State) []domain.ComicFile {
		var out []domain.ComicFile
		for _, g := range s.Groups {
			out = append(out, g.Files...)
		}
		return out
	})
)
