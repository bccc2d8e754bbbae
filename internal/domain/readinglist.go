package domain

// ReadingList is an owned, ordered list of comics.
type ReadingList struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Summary        string  `json:"summary,omitempty"`
	Owner          string  `json:"owner,omitempty"`
	EntryIDs       []int64 `json:"entryIds,omitempty"`
	CreatedOn      int64   `json:"createdOn,omitempty"`
	LastModifiedOn int64   `json:"lastModifiedOn,omitempty"`
}

// ReadingListID keys reading lists for merging.
func ReadingListID(l ReadingList) int64 { return l.ID }
