package domain

// Cursor records how far the comic list has been synchronised so a later
// run can resume from it.
type Cursor struct {
	ServerURL        string `json:"server_url"`
	ComicBooksLastID int64  `json:"comic_books_last_id"`
	ComicBooksSeen   int    `json:"comic_books_seen"`
	UpdatedAt        int64  `json:"updated_at"`
}
