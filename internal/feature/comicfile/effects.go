package comicfile

import (
	"context"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

// Message keys.
const (
	KeyLoadFailed    = "comic-files.load-failed"
	KeyImportFailed  = "comic-files.import-failed"
	KeyImportSuccess = "comic-files.import-success"
)

// Service is the comic file REST surface.
type Service interface {
	LoadComicFiles(ctx context.Context, directory string, maxFiles int) ([]domain.ComicFileGroup, error)
	ImportComicFiles(ctx context.Context, filenames []string, skipMetadata, skipBlockingPages bool) (domain.ImportResult, error)
}

// Effects returns the import pipelines bound to svc. An import answered
// with success=false is a logical failure that still alerts.
func Effects(svc Service) []effect.Effect {
	return []effect.Effect{
		&effect.Pipeline[LoadComicFiles, []domain.ComicFileGroup]{
			Operation: "load-comic-files",
			Call: func(ctx context.Context, a LoadComicFiles) ([]domain.ComicFileGroup, error) {
				return svc.LoadComicFiles(ctx, a.Directory, a.MaxFiles)
			},
			Success: func(_ LoadComicFiles, groups []domain.ComicFileGroup) store.Action {
				return ComicFilesLoaded{Groups: groups}
			},
			Failure: func(_ LoadComicFiles, err error) store.Action {
				return LoadComicFilesFailed{Err: err}
			},
			AlertKey:    KeyLoadFailed,
			AlertParams: func(a LoadComicFiles) map[string]any { return map[string]any{"directory": a.Directory} },
		},
		&effect.Pipeline[ImportComicFiles, domain.ImportResult]{
			Operation: "import-comic-files",
			Call: func(ctx context.Context, a ImportComicFiles) (domain.ImportResult, error) {
				return svc.ImportComicFiles(ctx, a.Filenames, a.SkipMetadata, a.SkipBlockingPages)
			},
			Verify: func(r domain.ImportResult) error {
				if !r.Success {
					return domain.ErrNotSuccessful
				}
				return nil
			},
			Success: func(a ImportComicFiles, _ domain.ImportResult) store.Action {
				return ComicFilesImported{Filenames: a.Filenames}
			},
			Failure: func(_ ImportComicFiles, err error) store.Action {
				return ImportComicFilesFailed{Err: err}
			},
			AlertKey:       KeyImportFailed,
			AlertOnLogical: true,
			SuccessKey:     KeyImportSuccess,
			AlertParams:    func(a ImportComicFiles) map[string]any { return map[string]any{"count": len(a.Filenames)} },
		},
		&effect.Map[ComicFilesDirectoryChanged]{
			Label: "reload-changed-directory",
			Fn: func(a ComicFilesDirectoryChanged) store.Action {
				return LoadComicFiles{Directory: a.Directory, MaxFiles: a.MaxFiles}
			},
		},
	}
}
