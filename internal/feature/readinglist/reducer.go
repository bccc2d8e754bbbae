// Package readinglist manages the user's reading lists.
package readinglist

import (
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/store"
)

// FeatureKey names the slice.
const FeatureKey = "reading-lists"

// State is the reading list slice. Lists holds each id at most once.
type State struct {
	Busy   bool
	Saving bool
	Lists  []domain.ReadingList
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
	case LoadReadingLists, DeleteReadingLists:
		next.Busy = true
	case ReadingListsLoaded:
		next.Busy = false
		next.Lists = domain.Upsert(nil, domain.ReadingListID, a.Lists...)
	case LoadReadingListsFailed, DeleteReadingListsFailed:
		next.Busy = false
	case SaveReadingList:
		next.Saving = true
	case ReadingListSaved:
		next.Saving = false
		next.Lists = domain.Upsert(s.Lists, domain.ReadingListID, a.List)
	case SaveReadingListFailed:
		next.Saving = false
	case ReadingListsDeleted:
		next.Busy = false
		next.Lists = domain.Remove(s.Lists, domain.ReadingListID, a.IDs...)
	case ReadingListUpdated:
		next.Lists = domain.Upsert(s.Lists, domain.ReadingListID, a.List)
	case ReadingListRemoved:
		next.Lists = domain.Remove(s.Lists, domain.ReadingListID, a.List.ID)
	default:
		return s
	}
	return &next
}
