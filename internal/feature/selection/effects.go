package selection

import (
	"context"

	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

// Message keys.
const (
	KeyLoadFailed   = "comic-book-selection.load-failed"
	KeyUpdateFailed = "comic-book-selection.update-failed"
)

// Service is the selection REST surface.
type Service interface {
	LoadSelections(ctx context.Context) ([]int64, error)
	AddSelection(ctx context.Context, comicBookID int64) ([]int64, error)
	RemoveSelection(ctx context.Context, comicBookID int64) ([]int64, error)
	ClearSelections(ctx context.Context) ([]int64, error)
}

func loaded(ids []int64) store.Action { return ComicBookSelectionsLoaded{IDs: ids} }

func updateFailed(err error) store.Action { return UpdateComicBookSelectionsFailed{Err: err} }

// Effects returns the selection pipelines bound to svc.
func Effects(svc Service) []effect.Effect {
	return []effect.Effect{
		&effect.Pipeline[LoadComicBookSelections, []int64]{
			Operation: "load-comic-book-selections",
			Call: func(ctx context.Context, _ LoadComicBookSelections) ([]int64, error) {
				return svc.LoadSelections(ctx)
			},
			Success: func(_ LoadComicBookSelections, ids []int64) store.Action { return loaded(ids) },
			Failure: func(_ LoadComicBookSelections, err error) store.Action {
				return LoadComicBookSelectionsFailed{Err: err}
			},
			AlertKey: KeyLoadFailed,
		},
		&effect.Pipeline[AddSingleSelection, []int64]{
			Operation: "add-single-selection",
			Call: func(ctx context.Context, a AddSingleSelection) ([]int64, error) {
				return svc.AddSelection(ctx, a.ComicBookID)
			},
			Success:  func(_ AddSingleSelection, ids []int64) store.Action { return loaded(ids) },
			Failure:  func(_ AddSingleSelection, err error) store.Action { return updateFailed(err) },
			AlertKey: KeyUpdateFailed,
		},
		&effect.Pipeline[RemoveSingleSelection, []int64]{
			Operation: "remove-single-selection",
			Call: func(ctx context.Context, a RemoveSingleSelection) ([]int64, error) {
				return svc.RemoveSelection(ctx, a.ComicBookID)
			},
			Success:  func(_ RemoveSingleSelection, ids []int64) store.Action { return loaded(ids) },
			Failure:  func(_ RemoveSingleSelection, err error) store.Action { return updateFailed(err) },
			AlertKey: KeyUpdateFailed,
		},
		&effect.Pipeline[ClearSelections, []int64]{
			Operation: "clear-selections",
			Call: func(ctx context.Context, _ ClearSelections) ([]int64, error) {
				return svc.ClearSelections(ctx)
			},
			Success:  func(_ ClearSelections, ids []int64) store.Action { return loaded(ids) },
			Failure:  func(_ ClearSelections, err error) store.Action { return updateFailed(err) },
			AlertKey: KeyUpdateFailed,
		},
	}
}
