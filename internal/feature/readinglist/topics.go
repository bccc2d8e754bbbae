package readinglist

import (
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/internal/live"
	"github.com/comixed/comixed-client/pkg/store"
)

// Push topics.
const (
	TopicUpdate  = "/user/queue/reading-list.update"
	TopicRemoval = "/user/queue/reading-list.removal"
)

// Bindings maps pushed reading list messages to actions.
func Bindings() []live.Binding {
	return []live.Binding{
		{
			Topic:  TopicUpdate,
			Decode: live.JSON(func(l domain.ReadingList) store.Action { return ReadingListUpdated{List: l} }),
		},
		{
			Topic:  TopicRemoval,
			Decode: live.JSON(func(l domain.ReadingList) store.Action { return ReadingListRemoved{List: l} }),
		},
	}
}
