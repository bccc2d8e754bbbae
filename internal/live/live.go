// Package live turns server-pushed topic messages into store actions.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/comixed/comixed-client/internal/ports"
	"github.com/comixed/comixed-client/pkg/log"
	"github.com/comixed/comixed-client/pkg/store"
)

// Decoder converts a message body into the action to dispatch.
type Decoder func(body []byte) (store.Action, error)

// Binding maps one topic to an action.
type Binding struct {
	Topic  string
	Decode Decoder
}

// JSON builds a Decoder that unmarshals the body into T and wraps it with
// build.
func JSON[T any](build func(T) store.Action) Decoder {
	return func(body []byte) (store.Action, error) {
		var v T
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, fmt.Errorf("decode %T: %w", v, err)
		}
		return build(v), nil
	}
}

// Bound holds the subscriptions created by Bind.
type Bound struct {
	messaging ports.Messaging
	mu        sync.Mutex
	subs      []ports.Subscription
}

// Bind subscribes every binding and dispatches decoded actions to d until
// ctx is done or Close is called. Bodies that fail to decode are logged and
// dropped.
func Bind(ctx context.Context, messaging ports.Messaging, d store.Dispatcher, logger log.Logger, bindings ...Binding) (*Bound, error) {
	logger = log.OrNoop(logger).With(log.String("component", "live"))
	b := &Bound{messaging: messaging}

	for _, binding := range bindings {
		binding := binding
		if binding.Topic == "" || binding.Decode == nil {
			_ = b.Close(ctx)
			return nil, errors.New("live: binding needs a topic and a decoder")
		}
		sub, err := messaging.Subscribe(ctx, binding.Topic, func(body []byte) {
			action, err := binding.Decode(body)
			if err != nil {
				logger.Warn("dropping undecodable message", log.String("topic", binding.Topic), log.Err(err))
				return
			}
			if err := d.Dispatch(ctx, action); err != nil {
				logger.Warn("dispatch failed", log.String("topic", binding.Topic), log.Action(action.Type()), log.Err(err))
			}
		})
		if err != nil {
			_ = b.Close(ctx)
			return nil, fmt.Errorf("subscribe %s: %w", binding.Topic, err)
		}
		b.mu.Lock()
		b.subs = append(b.subs, sub)
		b.mu.Unlock()
	}
	return b, nil
}

// Topics returns the bound topics in binding order.
func (b *Bound) Topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.subs))
	for i, s := range b.subs {
		out[i] = s.Topic()
	}
	return out
}

// Close unsubscribes every binding.
func (b *Bound) Close(ctx context.Context) error {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	var errs []error
	for _, s := range subs {
		if err := b.messaging.Unsubscribe(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
