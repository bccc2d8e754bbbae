package store

import "fmt"

// Reducer maps the current slice and an action to the next slice.
// It must not perform I/O and must return state unchanged for actions it
// does not handle.
type Reducer[S any] func(state S, action Action) S

// Feature declares one slice of the store.
type Feature[S comparable] struct {
	// Key names the slice within the state tree.
	Key string

	// Initial builds the default slice value.
	Initial func() S

	// Reduce is the slice's reducer.
	Reduce Reducer[S]
}

func (f Feature[S]) validate() error {
	if f.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidFeature)
	}
	if f.Initial == nil || f.Reduce == nil {
		return fmt.Errorf("%w: %s: initial and reducer are required", ErrInvalidFeature, f.Key)
	}
	return nil
}

// slot is the type-erased form of a Feature held by the store.
type slot struct {
	key     string
	initial func() any
	reduce  func(any, Action) any
}

func (f Feature[S]) slot() slot {
	return slot{
		key:     f.Key,
		initial: func() any { return f.Initial() },
		reduce: func(v any, a Action) any {
			return f.Reduce(v.(S), a)
		},
	}
}
