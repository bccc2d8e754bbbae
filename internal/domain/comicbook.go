package domain

import "fmt"

// ComicBook is a comic in the library.
type ComicBook struct {
	ID           int64  `json:"id"`
	Publisher    string `json:"publisher"`
	Series       string `json:"series"`
	Volume       string `json:"volume"`
	IssueNumber  string `json:"issueNumber"`
	Title        string `json:"title,omitempty"`
	Filename     string `json:"filename"`
	ArchiveType  string `json:"archiveType,omitempty"`
	CoverDate    string `json:"coverDate,omitempty"`
	PageCount    int    `json:"pageCount"`
	ComicState   string `json:"comicState,omitempty"`
	LastModified int64  `json:"lastModifiedOn,omitempty"`
}

// Label renders "Series v.Volume #Issue".
func (c ComicBook) Label() string {
	if c.Series == "" {
		return c.Filename
	}
	if c.Volume == "" {
		return fmt.Sprintf("%s #%s", c.Series, c.IssueNumber)
	}
	return fmt.Sprintf("%s v%s #%s", c.Series, c.Volume, c.IssueNumber)
}

// ComicBookID keys comics for merging.
func ComicBookID(c ComicBook) int64 { return c.ID }
