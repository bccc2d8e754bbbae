package domain

// BlockedHash is a page hash the server skips when importing comics.
type BlockedHash struct {
	ID        int64  `json:"id,omitempty"`
	Label     string `json:"label"`
	Hash      string `json:"hash"`
	Comment   string `json:"comment,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	CreatedOn int64  `json:"createdOn,omitempty"`
}

// BlockedHashKey keys blocked hashes for merging.
func BlockedHashKey(b BlockedHash) string { return b.Hash }
