package comixed

import (
	"errors"

	httpAdapter "github.com/comixed/comixed-client/internal/adapters/http"
	"github.com/comixed/comixed-client/internal/feature/blockedhash"
	"github.com/comixed/comixed-client/internal/feature/comicbook"
	"github.com/comixed/comixed-client/internal/feature/comicfile"
	"github.com/comixed/comixed-client/internal/feature/readinglist"
	"github.com/comixed/comixed-client/internal/feature/scraping"
	"github.com/comixed/comixed-client/internal/feature/selection"
	"github.com/comixed/comixed-client/internal/feature/user"
	"github.com/comixed/comixed-client/internal/live"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

func registerFeatures(s *store.Store) error {
	return errors.Join(
		store.Register(s, selection.Feature),
		store.Register(s, comicbook.Feature),
		store.Register(s, blockedhash.Feature),
		store.Register(s, readinglist.Feature),
		store.Register(s, user.Feature),
		store.Register(s, scraping.Feature),
		store.Register(s, comicfile.Feature),
	)
}

func featureEffects(rest *httpAdapter.Client) []effect.Effect {
	var out []effect.Effect
	out = append(out, selection.Effects(httpAdapter.NewSelectionService(rest))...)
	out = append(out, comicbook.Effects(httpAdapter.NewComicBookService(rest))...)
	out = append(out, blockedhash.Effects(httpAdapter.NewBlockedHashService(rest))...)
	out = append(out, readinglist.Effects(httpAdapter.NewReadingListService(rest))...)
	out = append(out, user.Effects(httpAdapter.NewUserService(rest))...)
	out = append(out, scraping.Effects(httpAdapter.NewScrapingService(rest))...)
	out = append(out, comicfile.Effects(httpAdapter.NewComicFileService(rest))...)
	return out
}

// Topics the client subscribes to when live updates are on.
func featureBindings() []live.Binding {
	var out []live.Binding
	out = append(out, selection.Bindings()...)
	out = append(out, comicbook.Bindings()...)
	out = append(out, blockedhash.Bindings()...)
	out = append(out, readinglist.Bindings()...)
	return out
}
