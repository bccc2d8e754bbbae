// Package store provides the in-process state container of the comixed
// client runtime.
//
// The store holds one immutable slice per registered [Feature]. Slices change
// only through the feature's pure [Reducer], which the store applies to every
// dispatched [Action] in dispatch order from a single actor goroutine. After
// the reducers ran, the action and the resulting [State] are delivered to
// every [Subscription] as an [Envelope].
//
// # Usage
//
//	s := store.New(store.WithLogger(logger))
//	if err := store.Register(s, selection.Feature); err != nil {
//	    return err
//	}
//	if err := s.Start(ctx); err != nil {
//	    return err
//	}
//	defer s.Stop()
//
//	sub := s.Subscribe(16)
//	defer sub.Unsubscribe()
//
//	_ = s.Dispatch(ctx, selection.LoadComicBookSelections{})
//
// # Slices
//
// Feature states are pointers to structs that are never mutated after a
// reducer returns them. A reducer that does not recognise an action returns
// its input pointer, which lets [Selector] skip recomputation by comparing
// slice identity.
//
// # Reset
//
// Dispatching [ResetState] returns every slice to its feature's initial
// value.
package store
