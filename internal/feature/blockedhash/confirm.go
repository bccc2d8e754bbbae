package blockedhash

import (
	"context"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/confirm"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

// ConfirmSave asks c before dispatching SaveBlockedHash. Nothing is
// dispatched unless the user confirms.
func ConfirmSave(ctx context.Context, c confirm.Confirmer, tr effect.Translator, d store.Dispatcher, entry domain.BlockedHash) (bool, error) {
	params := map[string]any{"hash": entry.Hash}
	return confirm.Dispatch(ctx, c, d, confirm.Request{
		Title:   effect.Translate(tr, KeySaveConfirmTitle, params),
		Message: effect.Translate(tr, KeySaveConfirmMessage, params),
	}, SaveBlockedHash{Entry: entry})
}

// ConfirmDelete asks c before dispatching DeleteBlockedHashes.
func ConfirmDelete(ctx context.Context, c confirm.Confirmer, tr effect.Translator, d store.Dispatcher, hashes []string) (bool, error) {
	params := map[string]any{"count": len(hashes)}
	return confirm.Dispatch(ctx, c, d, confirm.Request{
		Title:   effect.Translate(tr, KeyDeleteConfirmTitle, params),
		Message: effect.Translate(tr, KeyDeleteConfirmMessage, params),
	}, DeleteBlockedHashes{Hashes: hashes})
}
