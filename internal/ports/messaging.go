package ports

import "context"

// MessageHandler receives the raw JSON body of a pushed message.
type MessageHandler func(body []byte)

// Subscription identifies one active topic subscription.
type Subscription interface {
	ID() string
	Topic() string
}

// Messaging subscribes to server-pushed topics.
type Messaging interface {
	// Subscribe registers handler for topic. Handlers run on the messaging
	// goroutine and must not block.
	Subscribe(ctx context.Context, topic string, handler MessageHandler) (Subscription, error)

	// Unsubscribe cancels sub. Unknown subscriptions are ignored.
	Unsubscribe(ctx context.Context, sub Subscription) error
}
