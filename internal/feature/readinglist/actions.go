package readinglist

import "github.com/comixed/comixed-client/internal/domain"

// LoadReadingLists requests the user's reading lists.
type LoadReadingLists struct{}

// ReadingListsLoaded carries the loaded lists.
type ReadingListsLoaded struct {
	Lists []domain.ReadingList
}

// LoadReadingListsFailed reports a failed load.
type LoadReadingListsFailed struct {
	Err error
}

// SaveReadingList creates or updates a list.
type SaveReadingList struct {
	List domain.ReadingList
}

// ReadingListSaved carries the stored list.
type ReadingListSaved struct {
	List domain.ReadingList
}

// SaveReadingListFailed reports a failed save.
type SaveReadingListFailed struct {
	List domain.ReadingList
	Err  error
}

// DeleteReadingLists removes lists by id.
type DeleteReadingLists struct {
	IDs []int64
}

// ReadingListsDeleted reports the removed ids.
type ReadingListsDeleted struct {
	IDs []int64
}

// DeleteReadingListsFailed reports a failed delete.
type DeleteReadingListsFailed struct {
	Err error
}

// ReadingListUpdated is pushed when a list is created or changed.
type ReadingListUpdated struct {
	List domain.ReadingList
}

// ReadingListRemoved is pushed when a list is removed.
type ReadingListRemoved struct {
	List domain.ReadingList
}

func (LoadReadingLists) Type() string         { return "[Reading Lists] load" }
func (ReadingListsLoaded) Type() string       { return "[Reading Lists] loaded" }
func (LoadReadingListsFailed) Type() string   { return "[Reading Lists] load failed" }
func (SaveReadingList) Type() string          { return "[Reading List] save" }
func (ReadingListSaved) Type() string         { return "[Reading List] saved" }
func (SaveReadingListFailed) Type() string    { return "[Reading List] save failed" }
func (DeleteReadingLists) Type() string       { return "[Reading Lists] delete" }
func (ReadingListsDeleted) Type() string      { return "[Reading Lists] deleted" }
func (DeleteReadingListsFailed) Type() string { return "[Reading Lists] delete failed" }
func (ReadingListUpdated) Type() string       { return "[Reading Lists] list updated" }
func (ReadingListRemoved) Type() string       { return "[Reading Lists] list removed" }
