package blockedhash

import (
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/internal/live"
	"github.com/comixed/comixed-client/pkg/store"
)

// Push topics.
const (
	TopicUpdate  = "/topic/blocked-hash-list.update"
	TopicRemoval = "/topic/blocked-hash-list.removal"
)

// Bindings maps pushed blocked hash messages to actions.
func Bindings() []live.Binding {
	return []live.Binding{
		{
			Topic:  TopicUpdate,
			Decode: live.JSON(func(e domain.BlockedHash) store.Action { return BlockedHashUpdated{Entry: e} }),
		},
		{
			Topic:  TopicRemoval,
			Decode: live.JSON(func(e domain.BlockedHash) store.Action { return BlockedHashRemoved{Entry: e} }),
		},
	}
}
