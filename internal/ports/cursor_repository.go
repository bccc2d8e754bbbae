package ports

import (
	"context"

	"github.com/comixed/comixed-client/internal/domain"
)

// CursorRepository persists the comic list sync position.
type CursorRepository interface {
	// Load returns the saved cursor, or a zero cursor and nil error when
	// nothing was saved yet.
	Load(ctx context.Context) (domain.Cursor, error)

	// Save persists cursor atomically.
	Save(ctx context.Context, cursor domain.Cursor) error
}
