package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUpsert(t *testing.T) {
	tests := []struct {
		name    string
		items   []ComicBook
		updates []ComicBook
		want    []ComicBook
	}{
		{
			name:    "append to empty",
			updates: []ComicBook{{ID: 1}, {ID: 2}},
			want:    []ComicBook{{ID: 1}, {ID: 2}},
		},
		{
			name:    "replace existing and keep the rest",
			items:   []ComicBook{{ID: 1, Series: "old"}, {ID: 2}, {ID: 3}},
			updates: []ComicBook{{ID: 1, Series: "new"}, {ID: 4}},
			want:    []ComicBook{{ID: 2}, {ID: 3}, {ID: 1, Series: "new"}, {ID: 4}},
		},
		{
			name:    "duplicate ids in one batch, last wins",
			items:   []ComicBook{{ID: 1, Series: "old"}, {ID: 2}},
			updates: []ComicBook{{ID: 1, Series: "first"}, {ID: 3}, {ID: 1, Series: "second"}},
			want:    []ComicBook{{ID: 2}, {ID: 3}, {ID: 1, Series: "second"}},
		},
		{
			name:  "no updates",
			items: []ComicBook{{ID: 1}},
			want:  []ComicBook{{ID: 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]ComicBook(nil), tt.items...)
			got := Upsert(tt.items, ComicBookID, tt.updates...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Upsert() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(before, tt.items); diff != "" {
				t.Errorf("Upsert() modified its input (-before +after):\n%s", diff)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	items := []BlockedHash{{Hash: "a"}, {Hash: "b"}, {Hash: "c"}}
	got := Remove(items, BlockedHashKey, "b", "z")
	want := []BlockedHash{{Hash: "a"}, {Hash: "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Remove() mismatch (-want +got):\n%s", diff)
	}
	if len(items) != 3 {
		t.Errorf("Remove() modified its input")
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name   string
		set    []string
		on     bool
		values []string
		want   []string
	}{
		{"add new", []string{"a"}, true, []string{"b"}, []string{"a", "b"}},
		{"add existing", []string{"a", "b"}, true, []string{"a"}, []string{"b", "a"}},
		{"add duplicates", nil, true, []string{"a", "a"}, []string{"a"}},
		{"remove", []string{"a", "b"}, false, []string{"a"}, []string{"b"}},
		{"remove missing", []string{"a"}, false, []string{"z"}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Toggle(tt.set, tt.on, tt.values...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Toggle() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUser(t *testing.T) {
	u := User{
		Roles:       []Role{{Name: "READER"}, {Name: RoleAdmin}},
		Preferences: []Preference{{Name: "theme", Value: "dark"}},
	}
	if !u.IsAdmin() {
		t.Error("IsAdmin() = false, want true")
	}
	if got := u.Preference("theme", "light"); got != "dark" {
		t.Errorf("Preference(theme) = %q", got)
	}
	if got := u.Preference("page-size", "10"); got != "10" {
		t.Errorf("Preference(page-size) = %q", got)
	}
}

func TestComicBookLabel(t *testing.T) {
	tests := []struct {
		comic ComicBook
		want  string
	}{
		{ComicBook{Series: "Saga", Volume: "2012", IssueNumber: "1"}, "Saga v2012 #1"},
		{ComicBook{Series: "Saga", IssueNumber: "1"}, "Saga #1"},
		{ComicBook{Filename: "saga-001.cbz"}, "saga-001.cbz"},
	}
	for _, tt := range tests {
		if got := tt.comic.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}
