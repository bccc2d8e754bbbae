package blockedhash

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/alert"
	"github.com/comixed/comixed-client/pkg/confirm"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

var (
	hashA = domain.BlockedHash{Hash: "aaa", Label: "ad"}
	hashB = domain.BlockedHash{Hash: "bbb", Label: "credits"}
)

func TestReduce(t *testing.T) {
	renamed := domain.BlockedHash{Hash: "aaa", Label: "advert"}
	tests := []struct {
		name   string
		state  *State
		action store.Action
		want   *State
	}{
		{
			name:   "loaded drops stale selections",
			state:  &State{Busy: true, Selected: []string{"aaa", "zzz"}},
			action: BlockedHashListLoaded{Entries: []domain.BlockedHash{hashA, hashB}},
			want:   &State{Entries: []domain.BlockedHash{hashA, hashB}, Selected: []string{"aaa"}},
		},
		{
			name:   "saved replaces same hash",
			state:  &State{Busy: true, Entries: []domain.BlockedHash{hashA, hashB}},
			action: BlockedHashSaved{Entry: renamed},
			want:   &State{Entries: []domain.BlockedHash{hashB, renamed}},
		},
		{
			name:   "push update never duplicates",
			state:  &State{Entries: []domain.BlockedHash{hashA}},
			action: BlockedHashUpdated{Entry: renamed},
			want:   &State{Entries: []domain.BlockedHash{renamed}},
		},
		{
			name:   "push removal drops entry and selection",
			state:  &State{Entries: []domain.BlockedHash{hashA, hashB}, Selected: []string{"aaa"}},
			action: BlockedHashRemoved{Entry: hashA},
			want:   &State{Entries: []domain.BlockedHash{hashB}, Selected: []string{}},
		},
		{
			name:   "deleted",
			state:  &State{Busy: true, Entries: []domain.BlockedHash{hashA, hashB}, Selected: []string{"aaa", "bbb"}},
			action: BlockedHashesDeleted{Hashes: []string{"bbb"}},
			want:   &State{Entries: []domain.BlockedHash{hashA}, Selected: []string{"aaa"}},
		},
		{
			name:   "save failure clears busy only",
			state:  &State{Busy: true, Entries: []domain.BlockedHash{hashA}},
			action: SaveBlockedHashFailed{Entry: hashB, Err: errors.New("x")},
			want:   &State{Entries: []domain.BlockedHash{hashA}},
		},
		{
			name:   "select",
			state:  &State{Selected: []string{"aaa"}},
			action: SetBlockedHashSelected{Hashes: []string{"aaa", "bbb"}, Selected: true},
			want:   &State{Selected: []string{"aaa", "bbb"}},
		},
		{
			name:   "deselect",
			state:  &State{Selected: []string{"aaa", "bbb"}},
			action: SetBlockedHashSelected{Hashes: []string{"aaa"}},
			want:   &State{Selected: []string{"bbb"}},
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

func TestSelectSelectedEntries(t *testing.T) {
	st := &State{Entries: []domain.BlockedHash{hashA, hashB}, Selected: []string{"bbb"}}
	got := SelectSelectedEntries.Get(store.With(store.State{}, Feature, st))
	assert.Equal(t, []domain.BlockedHash{hashB}, got)
}

type recordingDispatcher struct{ actions []store.Action }

func (d *recordingDispatcher) Dispatch(_ context.Context, a store.Action) error {
	d.actions = append(d.actions, a)
	return nil
}

func TestConfirmSave(t *testing.T) {
	ctx := context.Background()

	declined := &recordingDispatcher{}
	ok, err := ConfirmSave(ctx, confirm.Never(), nil, declined, hashA)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, declined.actions)

	accepted := &recordingDispatcher{}
	ok, err = ConfirmSave(ctx, confirm.Always(), nil, accepted, hashA)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []store.Action{SaveBlockedHash{Entry: hashA}}, accepted.actions)
}

func TestConfirmDelete_PassesTranslatedRequest(t *testing.T) {
	var seen confirm.Request
	c := confirm.Func(func(_ context.Context, req confirm.Request) bool {
		seen = req
		return true
	})
	d := &recordingDispatcher{}

	ok, err := ConfirmDelete(context.Background(), c, nil, d, []string{"aaa", "bbb"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, KeyDeleteConfirmTitle, seen.Title)
	assert.Equal(t, KeyDeleteConfirmMessage, seen.Message)
	assert.Equal(t, []store.Action{DeleteBlockedHashes{Hashes: []string{"aaa", "bbb"}}}, d.actions)
}

type fakeService struct {
	saved domain.BlockedHash
	err   error
}

func (f *fakeService) LoadBlockedHashes(context.Context) ([]domain.BlockedHash, error) {
	return []domain.BlockedHash{hashA}, f.err
}

func (f *fakeService) SaveBlockedHash(_ context.Context, e domain.BlockedHash) (domain.BlockedHash, error) {
	f.saved = e
	return e, f.err
}

func (f *fakeService) DeleteBlockedHashes(_ context.Context, hashes []string) ([]string, error) {
	return hashes, f.err
}

func TestEffects(t *testing.T) {
	var rec alert.Recorder
	env := effect.Env{Alerter: alert.NewService(nil, rec.Sink())}
	ctx := context.Background()

	effects := Effects(&fakeService{})
	require.Len(t, effects, 3)
	for _, e := range effects {
		require.NoError(t, e.Validate())
	}

	out, kind := effects[1].Handle(ctx, SaveBlockedHash{Entry: hashA}, env)
	assert.Equal(t, effect.Succeeded, kind)
	assert.Equal(t, BlockedHashSaved{Entry: hashA}, out)
	assert.Equal(t, []string{KeySaveSuccess}, rec.Messages(alert.LevelInfo))

	failing := Effects(&fakeService{err: errors.New("down")})
	out, kind = failing[2].Handle(ctx, DeleteBlockedHashes{Hashes: []string{"aaa"}}, env)
	assert.Equal(t, effect.FailedService, kind)
	assert.IsType(t, DeleteBlockedHashesFailed{}, out)
	assert.Equal(t, []string{KeyDeleteFailed}, rec.Messages(alert.LevelError))
}

func TestBindings(t *testing.T) {
	b := Bindings()
	require.Len(t, b, 2)

	action, err := b[0].Decode([]byte(`{"hash":"aaa","label":"ad"}`))
	require.NoError(t, err)
	assert.Equal(t, BlockedHashUpdated{Entry: hashA}, action)

	action, err = b[1].Decode([]byte(`{"hash":"aaa","label":"ad"}`))
	require.NoError(t, err)
	assert.Equal(t, BlockedHashRemoved{Entry: hashA}, action)
}
