package domain

// ComicFile is an archive found in an import directory.
type ComicFile struct {
	Filename     string `json:"filename"`
	BaseFilename string `json:"baseFilename"`
	Size         int64  `json:"size"`
}

// ComicFileGroup is the set of comic files found in one directory.
type ComicFileGroup struct {
	Directory string      `json:"directory"`
	Files     []ComicFile `json:"files"`
}

// Filenames flattens the groups into their file names.
func Filenames(groups []ComicFileGroup) []string {
	var out []string
	for _, g := range groups {
		for _, f := range g.Files {
			out = append(out, f.Filename)
		}
	}
	return out
}
