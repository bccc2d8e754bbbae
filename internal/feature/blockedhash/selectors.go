package blockedhash

import (
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/store"
)

var (
	// SelectState returns the whole slice.
	SelectState = store.Select(Feature, func(s *State) *State { return s })

	// SelectEntries returns every blocked hash.
	SelectEntries = store.Select(Feature, func(s *State) []domain.BlockedHash { return s.Entries })

	// SelectSelectedEntries returns the entries currently selected.
	SelectSelectedEntries = store.Select(Feature, func(s *State) []domain.BlockedHash {
		selected := make(map[string]bool, len(s.Selected))
		for _, h := range s.Selected {
			selected[h] = true
		}
		var out []domain.BlockedHash
		for _, e := range s.Entries {
			if selected[e.Hash] {
				out = append(out, e)
			}
		}
		return out
	})
)
