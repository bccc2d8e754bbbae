package comicbook

import (
	"context"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

// KeyLoadFailed is alerted when a batch cannot be loaded.
const KeyLoadFailed = "comic-books.load-failed"

// Service is the comic list REST surface.
type Service interface {
	LoadComicBooks(ctx context.Context, maxRecords int, lastID int64) (domain.ComicBookBatch, error)
}

// Effects returns the comic list pipelines bound to svc. A received batch
// that is not the last one requests the next batch.
func Effects(svc Service) []effect.Effect {
	return []effect.Effect{
		&effect.Pipeline[LoadComicBooks, domain.ComicBookBatch]{
			Operation: "load-comic-books",
			Call: func(ctx context.Context, a LoadComicBooks) (domain.ComicBookBatch, error) {
				return svc.LoadComicBooks(ctx, a.MaxRecords, a.LastID)
			},
			Success: func(a LoadComicBooks, b domain.ComicBookBatch) store.Action {
				return ComicBooksReceived{
					ComicBooks:  b.ComicBooks,
					LastID:      b.LastID,
					LastPayload: b.LastPayload,
					MaxRecords:  a.MaxRecords,
				}
			},
			Failure: func(_ LoadComicBooks, err error) store.Action {
				return LoadComicBooksFailed{Err: err}
			},
			AlertKey: KeyLoadFailed,
		},
		&effect.Map[ComicBooksReceived]{
			Label: "load-next-comic-book-batch",
			Fn: func(a ComicBooksReceived) store.Action {
				// An empty batch ends paging even without the last payload flag.
				if a.LastPayload || len(a.ComicBooks) == 0 {
					return nil
				}
				return LoadComicBooks{MaxRecords: a.MaxRecords, LastID: a.LastID}
			},
		},
	}
}
