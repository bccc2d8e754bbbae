package selection

import (
	"github.com/comixed/comixed-client/internal/live"
	"github.com/comixed/comixed-client/pkg/store"
)

// TopicUpdate carries the user's new selection set.
const TopicUpdate = "/user/queue/comic-book-selection.update"

// Bindings maps pushed selection messages to actions.
func Bindings() []live.Binding {
	return []live.Binding{
		{
			Topic:  TopicUpdate,
			Decode: live.JSON(func(ids []int64) store.Action { return ComicBookSelectionsUpdated{IDs: ids} }),
		},
	}
}
