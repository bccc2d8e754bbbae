// Package blockedhash manages the list of page hashes blocked from import.
package blockedhash

import (
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/store"
)

// FeatureKey names the slice.
const FeatureKey = "blocked-hash-list"

// State is the blocked hash slice. Entries hold each hash at most once.
type State struct {
	Busy     bool
	Entries  []domain.BlockedHash
	Selected []string
}

// Feature registers the slice with a store.
var Feature = store.Feature[*State]{
	Key:     FeatureKey,
	Initial: func() *State { return &State{} },
	Reduce:  reduce,
}

func reduce(s *State, action store.Action) *State {
	switch a := action.(type) {
	case LoadBlockedHashList, SaveBlockedHash, DeleteBlockedHashes:
		next := *s
		next.Busy = true
		return &next
	case BlockedHashListLoaded:
		known := make(map[string]bool, len(a.Entries))
		for _, e := range a.Entries {
			known[e.Hash] = true
		}
		var selected []string
		for _, h := range s.Selected {
			if known[h] {
				selected = append(selected, h)
			}
		}
		return &State{Entries: domain.Upsert(nil, domain.BlockedHashKey, a.Entries...), Selected: selected}
	case LoadBlockedHashListFailed, SaveBlockedHashFailed, DeleteBlockedHashesFailed:
		next := *s
		next.Busy = false
		return &next
	case BlockedHashSaved:
		return &State{
			Entries:  domain.Upsert(s.Entries, domain.BlockedHashKey, a.Entry),
			Selected: s.Selected,
		}
	case BlockedHashesDeleted:
		return &State{
			Entries:  domain.Remove(s.Entries, domain.BlockedHashKey, a.Hashes...),
			Selected: domain.Toggle(s.Selected, false, a.Hashes...),
		}
	case BlockedHashUpdated:
		return &State{
			Busy:     s.Busy,
			Entries:  domain.Upsert(s.Entries, domain.BlockedHashKey, a.Entry),
			Selected: s.Selected,
		}
	case BlockedHashRemoved:
		return &State{
			Busy:     s.Busy,
			Entries:  domain.Remove(s.Entries, domain.BlockedHashKey, a.Entry.Hash),
			Selected: domain.Toggle(s.Selected, false, a.Entry.Hash),
		}
	case SetBlockedHashSelected:
		next := *s
		next.Selected = domain.Toggle(s.Selected, a.Selected, a.Hashes...)
		return &next
	}
	return s
}
