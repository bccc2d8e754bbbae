package blockedhash

import "github.com/comixed/comixed-client/internal/domain"

// LoadBlockedHashList requests every blocked page.
type LoadBlockedHashList struct{}

// BlockedHashListLoaded carries the loaded entries.
type BlockedHashListLoaded struct {
	Entries []domain.BlockedHash
}

// LoadBlockedHashListFailed reports a failed load.
type LoadBlockedHashListFailed struct {
	Err error
}

// SaveBlockedHash creates or updates one entry.
type SaveBlockedHash struct {
	Entry domain.BlockedHash
}

// BlockedHashSaved carries the stored entry.
type BlockedHashSaved struct {
	Entry domain.BlockedHash
}

// SaveBlockedHashFailed reports a failed save.
type SaveBlockedHashFailed struct {
	Entry domain.BlockedHash
	Err   error
}

// DeleteBlockedHashes removes entries by hash.
type DeleteBlockedHashes struct {
	Hashes []string
}

// BlockedHashesDeleted carries the hashes the server removed.
type BlockedHashesDeleted struct {
	Hashes []string
}

// DeleteBlockedHashesFailed reports a failed delete.
type DeleteBlockedHashesFailed struct {
	Err error
}

// BlockedHashUpdated is pushed when an entry is created or changed.
type BlockedHashUpdated struct {
	Entry domain.BlockedHash
}

// BlockedHashRemoved is pushed when an entry is removed.
type BlockedHashRemoved struct {
	Entry domain.BlockedHash
}

// SetBlockedHashSelected marks entries as selected or not.
type SetBlockedHashSelected struct {
	Hashes   []string
	Selected bool
}

func (LoadBlockedHashList) Type() string       { return "[Blocked Hash List] load" }
func (BlockedHashListLoaded) Type() string     { return "[Blocked Hash List] loaded" }
func (LoadBlockedHashListFailed) Type() string { return "[Blocked Hash List] load failed" }
func (SaveBlockedHash) Type() string           { return "[Blocked Hash List] save" }
func (BlockedHashSaved) Type() string          { return "[Blocked Hash List] saved" }
func (SaveBlockedHashFailed) Type() string     { return "[Blocked Hash List] save failed" }
func (DeleteBlockedHashes) Type() string       { return "[Blocked Hash List] delete" }
func (BlockedHashesDeleted) Type() string      { return "[Blocked Hash List] deleted" }
func (DeleteBlockedHashesFailed) Type() string { return "[Blocked Hash List] delete failed" }
func (BlockedHashUpdated) Type() string        { return "[Blocked Hash List] entry updated" }
func (BlockedHashRemoved) Type() string        { return "[Blocked Hash List] entry removed" }
func (SetBlockedHashSelected) Type() string    { return "[Blocked Hash List] set selected" }
