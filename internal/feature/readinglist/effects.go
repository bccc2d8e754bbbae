package readinglist

import (
	"context"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/confirm"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

// Message keys.
const (
	KeyLoadFailed           = "reading-list.load-failed"
	KeySaveFailed           = "reading-list.save-failed"
	KeySaveSuccess          = "reading-list.save-success"
	KeyDeleteFailed         = "reading-list.delete-failed"
	KeyDeleteSuccess        = "reading-list.delete-success"
	KeyDeleteConfirmTitle   = "reading-list.delete-confirm-title"
	KeyDeleteConfirmMessage = "reading-list.delete-confirm-message"
)

// Service is the reading list REST surface.
type Service interface {
	LoadReadingLists(ctx context.Context) ([]domain.ReadingList, error)
	SaveReadingList(ctx context.Context, list domain.ReadingList) (domain.ReadingList, error)
	DeleteReadingLists(ctx context.Context, ids []int64) error
}

// Effects returns the reading list pipelines bound to svc.
func Effects(svc Service) []effect.Effect {
	return []effect.Effect{
		&effect.Pipeline[LoadReadingLists, []domain.ReadingList]{
			Operation: "load-reading-lists",
			Call: func(ctx context.Context, _ LoadReadingLists) ([]domain.ReadingList, error) {
				return svc.LoadReadingLists(ctx)
			},
			Success: func(_ LoadReadingLists, lists []domain.ReadingList) store.Action {
				return ReadingListsLoaded{Lists: lists}
			},
			Failure: func(_ LoadReadingLists, err error) store.Action {
				return LoadReadingListsFailed{Err: err}
			},
			AlertKey: KeyLoadFailed,
		},
		&effect.Pipeline[SaveReadingList, domain.ReadingList]{
			Operation: "save-reading-list",
			Call: func(ctx context.Context, a SaveReadingList) (domain.ReadingList, error) {
				return svc.SaveReadingList(ctx, a.List)
			},
			Success: func(_ SaveReadingList, list domain.ReadingList) store.Action {
				return ReadingListSaved{List: list}
			},
			Failure: func(a SaveReadingList, err error) store.Action {
				return SaveReadingListFailed{List: a.List, Err: err}
			},
			AlertKey:    KeySaveFailed,
			SuccessKey:  KeySaveSuccess,
			AlertParams: func(a SaveReadingList) map[string]any { return map[string]any{"name": a.List.Name} },
		},
		&effect.Pipeline[DeleteReadingLists, struct{}]{
			Operation: "delete-reading-lists",
			Call: func(ctx context.Context, a DeleteReadingLists) (struct{}, error) {
				return struct{}{}, svc.DeleteReadingLists(ctx, a.IDs)
			},
			Success: func(a DeleteReadingLists, _ struct{}) store.Action {
				return ReadingListsDeleted{IDs: a.IDs}
			},
			Failure: func(_ DeleteReadingLists, err error) store.Action {
				return DeleteReadingListsFailed{Err: err}
			},
			AlertKey:    KeyDeleteFailed,
			SuccessKey:  KeyDeleteSuccess,
			AlertParams: func(a DeleteReadingLists) map[string]any { return map[string]any{"count": len(a.IDs)} },
		},
	}
}

// ConfirmDelete asks c before dispatching DeleteReadingLists. Nothing is
// dispatched unless the user confirms.
func ConfirmDelete(ctx context.Context, c confirm.Confirmer, tr effect.Translator, d store.Dispatcher, ids []int64) (bool, error) {
	params := map[string]any{"count": len(ids)}
	return confirm.Dispatch(ctx, c, d, confirm.Request{
		Title:   effect.Translate(tr, KeyDeleteConfirmTitle, params),
		Message: effect.Translate(tr, KeyDeleteConfirmMessage, params),
	}, DeleteReadingLists{IDs: ids})
}
