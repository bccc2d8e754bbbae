package domain

// Volume is a series volume reported by a metadata source.
type Volume struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Publisher  string `json:"publisher"`
	StartYear  string `json:"startYear"`
	IssueCount int    `json:"issueCount"`
	ImageURL   string `json:"imageURL,omitempty"`
}
