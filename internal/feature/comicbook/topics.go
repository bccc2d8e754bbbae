package comicbook

import (
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/internal/live"
	"github.com/comixed/comixed-client/pkg/store"
)

// Push topics.
const (
	TopicUpdate  = "/topic/comic-list.update"
	TopicRemoval = "/topic/comic-list.removal"
)

// Bindings maps pushed comic list messages to actions.
func Bindings() []live.Binding {
	return []live.Binding{
		{
			Topic:  TopicUpdate,
			Decode: live.JSON(func(c domain.ComicBook) store.Action { return ComicBookUpdated{ComicBook: c} }),
		},
		{
			Topic:  TopicRemoval,
			Decode: live.JSON(func(c domain.ComicBook) store.Action { return ComicBookRemoved{ComicBook: c} }),
		},
	}
}
