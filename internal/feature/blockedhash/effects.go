package blockedhash

import (
	"context"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

// Message keys.
const (
	KeyLoadFailed           = "blocked-hash-list.load-failed"
	KeySaveFailed           = "blocked-hash-list.save-failed"
	KeySaveSuccess          = "blocked-hash-list.save-success"
	KeySaveConfirmTitle     = "blocked-hash-list.save-confirm-title"
	KeySaveConfirmMessage   = "blocked-hash-list.save-confirm-message"
	KeyDeleteFailed         = "blocked-hash-list.delete-failed"
	KeyDeleteSuccess        = "blocked-hash-list.delete-success"
	KeyDeleteConfirmTitle   = "blocked-hash-list.delete-confirm-title"
	KeyDeleteConfirmMessage = "blocked-hash-list.delete-confirm-message"
)

// Service is the blocked hash REST surface.
type Service interface {
	LoadBlockedHashes(ctx context.Context) ([]domain.BlockedHash, error)
	SaveBlockedHash(ctx context.Context, entry domain.BlockedHash) (domain.BlockedHash, error)
	DeleteBlockedHashes(ctx context.Context, hashes []string) ([]string, error)
}

// Effects returns the blocked hash pipelines bound to svc.
func Effects(svc Service) []effect.Effect {
	return []effect.Effect{
		&effect.Pipeline[LoadBlockedHashList, []domain.BlockedHash]{
			Operation: "load-blocked-hash-list",
			Call: func(ctx context.Context, _ LoadBlockedHashList) ([]domain.BlockedHash, error) {
				return svc.LoadBlockedHashes(ctx)
			},
			Success: func(_ LoadBlockedHashList, entries []domain.BlockedHash) store.Action {
				return BlockedHashListLoaded{Entries: entries}
			},
			Failure: func(_ LoadBlockedHashList, err error) store.Action {
				return LoadBlockedHashListFailed{Err: err}
			},
			AlertKey: KeyLoadFailed,
		},
		&effect.Pipeline[SaveBlockedHash, domain.BlockedHash]{
			Operation: "save-blocked-hash",
			Call: func(ctx context.Context, a SaveBlockedHash) (domain.BlockedHash, error) {
				return svc.SaveBlockedHash(ctx, a.Entry)
			},
			Success: func(_ SaveBlockedHash, entry domain.BlockedHash) store.Action {
				return BlockedHashSaved{Entry: entry}
			},
			Failure: func(a SaveBlockedHash, err error) store.Action {
				return SaveBlockedHashFailed{Entry: a.Entry, Err: err}
			},
			AlertKey:    KeySaveFailed,
			SuccessKey:  KeySaveSuccess,
			AlertParams: func(a SaveBlockedHash) map[string]any { return map[string]any{"hash": a.Entry.Hash} },
		},
		&effect.Pipeline[DeleteBlockedHashes, []string]{
			Operation: "delete-blocked-hashes",
			Call: func(ctx context.Context, a DeleteBlockedHashes) ([]string, error) {
				return svc.DeleteBlockedHashes(ctx, a.Hashes)
			},
			Success: func(_ DeleteBlockedHashes, hashes []string) store.Action {
				return BlockedHashesDeleted{Hashes: hashes}
			},
			Failure: func(_ DeleteBlockedHashes, err error) store.Action {
				return DeleteBlockedHashesFailed{Err: err}
			},
			AlertKey:    KeyDeleteFailed,
			SuccessKey:  KeyDeleteSuccess,
			AlertParams: func(a DeleteBlockedHashes) map[string]any { return map[string]any{"count": len(a.Hashes)} },
		},
	}
}
