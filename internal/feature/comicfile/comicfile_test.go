package comicfile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/alert"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

var groups = []domain.ComicFileGroup{
	{Directory: "/import", Files: []domain.ComicFile{{Filename: "/import/a.cbz"}, {Filename: "/import/b.cbz"}}},
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name   string
		state  *State
		action store.Action
		want   *State
	}{
		{
			name:   "load remembers directory",
			state:  &State{},
			action: LoadComicFiles{Directory: "/import", MaxFiles: 10},
			want:   &State{Busy: true, Directory: "/import"},
		},
		{
			name:   "loaded keeps selections still present",
			state:  &State{Busy: true, Selections: []string{"/import/a.cbz", "/gone.cbz"}},
			action: ComicFilesLoaded{Groups: groups},
			want:   &State{Groups: groups, Selections: []string{"/import/a.cbz"}},
		},
		{
			name:   "select never duplicates",
			state:  &State{Selections: []string{"/import/a.cbz"}},
			action: SetComicFilesSelectedState{Filenames: []string{"/import/a.cbz", "/import/b.cbz"}, Selected: true},
			want:   &State{Selections: []string{"/import/a.cbz", "/import/b.cbz"}},
		},
		{
			name:   "deselect",
			state:  &State{Selections: []string{"/import/a.cbz", "/import/b.cbz"}},
			action: SetComicFilesSelectedState{Filenames: []string{"/import/a.cbz"}},
			want:   &State{Selections: []string{"/import/b.cbz"}},
		},
		{
			name:   "clear",
			state:  &State{Selections: []string{"/import/a.cbz"}},
			action: ClearComicFileSelections{},
			want:   &State{},
		},
		{
			name:   "imported drops imported selections",
			state:  &State{Importing: true, Selections: []string{"/import/a.cbz", "/import/b.cbz"}},
			action: ComicFilesImported{Filenames: []string{"/import/a.cbz"}},
			want:   &State{Selections: []string{"/import/b.cbz"}},
		},
		{
			name:   "import failed keeps selections",
			state:  &State{Importing: true, Selections: []string{"/import/a.cbz"}},
			action: ImportComicFilesFailed{Err: errors.New("x")},
			want:   &State{Selections: []string{"/import/a.cbz"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, reduce(tt.state, tt.action)); diff != "" {
				t.Errorf("reduce() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectFiles(t *testing.T) {
	st := store.With(store.State{}, Feature, &State{Groups: groups})
	assert.Len(t, SelectFiles.Get(st), 2)
}

type fakeService struct {
	result domain.ImportResult
	err    error
}

func (f fakeService) LoadComicFiles(context.Context, string, int) ([]domain.ComicFileGroup, error) {
	return groups, f.err
}

func (f fakeService) ImportComicFiles(context.Context, []string, bool, bool) (domain.ImportResult, error) {
	return f.result, f.err
}

func TestImport_RejectedImportAlerts(t *testing.T) {
	var rec alert.Recorder
	env := effect.Env{Alerter: alert.NewService(nil, rec.Sink())}

	out, kind := Effects(fakeService{})[1].Handle(context.Background(), ImportComicFiles{Filenames: []string{"/import/a.cbz"}}, env)
	assert.Equal(t, effect.FailedLogical, kind)
	assert.Equal(t, ImportComicFilesFailed{Err: domain.ErrNotSuccessful}, out)
	assert.Equal(t, []string{KeyImportFailed}, rec.Messages(alert.LevelError))
}

func TestImport_Success(t *testing.T) {
	var rec alert.Recorder
	env := effect.Env{Alerter: alert.NewService(nil, rec.Sink())}

	out, kind := Effects(fakeService{result: domain.ImportResult{Success: true}})[1].Handle(
		context.Background(), ImportComicFiles{Filenames: []string{"/import/a.cbz"}}, env)
	assert.Equal(t, effect.Succeeded, kind)
	assert.Equal(t, ComicFilesImported{Filenames: []string{"/import/a.cbz"}}, out)
	assert.Equal(t, []string{KeyImportSuccess}, rec.Messages(alert.LevelInfo))
}

func TestDirectoryChangedReloads(t *testing.T) {
	out, kind := Effects(fakeService{})[2].Handle(context.Background(), ComicFilesDirectoryChanged{Directory: "/import", MaxFiles: 50}, effect.Env{})
	assert.Equal(t, effect.Succeeded, kind)
	assert.Equal(t, LoadComicFiles{Directory: "/import", MaxFiles: 50}, out)
}
