package selection

// LoadComicBookSelections requests the selected comic ids.
type LoadComicBookSelections struct{}

// ComicBookSelectionsLoaded carries the server's selection set.
type ComicBookSelectionsLoaded struct {
	IDs []int64
}

// LoadComicBookSelectionsFailed reports a failed load.
type LoadComicBookSelectionsFailed struct {
	Err error
}

// AddSingleSelection selects one comic.
type AddSingleSelection struct {
	ComicBookID int64
}

// RemoveSingleSelection deselects one comic.
type RemoveSingleSelection struct {
	ComicBookID int64
}

// ClearSelections deselects every comic.
type ClearSelections struct{}

// UpdateComicBookSelectionsFailed reports a failed add, remove or clear.
type UpdateComicBookSelectionsFailed struct {
	Err error
}

// ComicBookSelectionsUpdated is pushed by the server when the selection
// changes elsewhere.
type ComicBookSelectionsUpdated struct {
	IDs []int64
}

func (LoadComicBookSelections) Type() string         { return "[Comic Book Selection] load" }
func (ComicBookSelectionsLoaded) Type() string       { return "[Comic Book Selection] loaded" }
func (LoadComicBookSelectionsFailed) Type() string   { return "[Comic Book Selection] load failed" }
func (AddSingleSelection) Type() string              { return "[Comic Book Selection] add single" }
func (RemoveSingleSelection) Type() string           { return "[Comic Book Selection] remove single" }
func (ClearSelections) Type() string                 { return "[Comic Book Selection] clear" }
func (UpdateComicBookSelectionsFailed) Type() string { return "[Comic Book Selection] update failed" }
func (ComicBookSelectionsUpdated) Type() string      { return "[Comic Book Selection] updated" }
