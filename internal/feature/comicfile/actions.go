package comicfile

import "github.com/comixed/comixed-client/internal/domain"

// LoadComicFiles lists comic files under Directory.
type LoadComicFiles struct {
	Directory string
	MaxFiles  int
}

// ComicFilesLoaded carries the files found.
type ComicFilesLoaded struct {
	Groups []domain.ComicFileGroup
}

// LoadComicFilesFailed reports a failed listing.
type LoadComicFilesFailed struct {
	Err error
}

// SetComicFilesSelectedState marks files as selected for import or not.
type SetComicFilesSelectedState struct {
	Filenames []string
	Selected  bool
}

// ClearComicFileSelections deselects every file.
type ClearComicFileSelections struct{}

// ImportComicFiles asks the server to import files.
type ImportComicFiles struct {
	Filenames         []string
	SkipMetadata      bool
	SkipBlockingPages bool
}

// ComicFilesImported reports an accepted import.
type ComicFilesImported struct {
	Filenames []string
}

// ImportComicFilesFailed reports a rejected or failed import.
type ImportComicFilesFailed struct {
	Err error
}

// ComicFilesDirectoryChanged reports that the watched import directory
// changed on disk.
type ComicFilesDirectoryChanged struct {
	Directory string
	MaxFiles  int
}

func (LoadComicFiles) Type() string             { return "[Comic Files] load" }
func (ComicFilesLoaded) Type() string           { return "[Comic Files] loaded" }
func (LoadComicFilesFailed) Type() string       { return "[Comic Files] load failed" }
func (SetComicFilesSelectedState) Type() string { return "[Comic Files] set selected state" }
func (ClearComicFileSelections) Type() string   { return "[Comic Files] clear selections" }
func (ImportComicFiles) Type() string           { return "[Comic Files] import" }
func (ComicFilesImported) Type() string         { return "[Comic Files] imported" }
func (ImportComicFilesFailed) Type() string     { return "[Comic Files] import failed" }
func (ComicFilesDirectoryChanged) Type() string { return "[Comic Files] directory changed" }
