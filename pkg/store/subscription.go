package store

import (
	"context"
	"sync"
)

// Subscription receives every reduced action in dispatch order.
// C is closed when the store stops. After Unsubscribe no further envelopes
// are sent and C is left open.
type Subscription struct {
	C <-chan Envelope

	id    uint64
	ch    chan Envelope
	done  chan struct{}
	once  sync.Once
	store *Store
}

// Subscribe registers a subscriber with the given channel buffer. A
// non-positive buffer uses the store default.
//
// The store loop blocks on a full subscriber, so subscribers must keep
// reading until they unsubscribe.
func (s *Store) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = s.opts.subscriberBuffer
	}
	ch := make(chan Envelope, buffer)
	sub := &Subscription{
		C:     ch,
		ch:    ch,
		done:  make(chan struct{}),
		store: s,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		close(ch)
		return sub
	}
	s.nextSub++
	sub.id = s.nextSub
	s.subs[sub.id] = sub
	return sub
}

// Unsubscribe detaches the subscription. It is safe to call more than once.
func (sub *Subscription) Unsubscribe() {
	sub.once.Do(func() {
		close(sub.done)
		sub.store.mu.Lock()
		delete(sub.store.subs, sub.id)
		sub.store.mu.Unlock()
	})
}

// Next returns the next envelope whose action satisfies match.
// It returns ErrStoreClosed when the store stops first.
func (sub *Subscription) Next(ctx context.Context, match func(Action) bool) (Envelope, error) {
	for {
		select {
		case <-ctx.Done():
			return Envelope{}, ctx.Err()
		case env, ok := <-sub.C:
			if !ok {
				return Envelope{}, ErrStoreClosed
			}
			if match == nil || match(env.Action) {
				return env, nil
			}
		}
	}
}

// OfType matches actions whose Type is one of types.
func OfType(types ...string) func(Action) bool {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(a Action) bool {
		_, ok := set[a.Type()]
		return ok
	}
}
