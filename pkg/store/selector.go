package store

import "sync"

// Selector is a memoized projection of one or more slices.
// Get recomputes only when an input slice changed identity since the
// previous call; otherwise it returns the cached output.
type Selector[R any] struct {
	inputs  []func(State) any
	project func(State) R

	mu    sync.Mutex
	last  []any
	value R
	valid bool
}

// Select builds a selector over one feature slice.
func Select[S comparable, R any](f Feature[S], project func(S) R) *Selector[R] {
	return &Selector[R]{
		inputs: []func(State) any{
			func(st State) any { return Slice(st, f) },
		},
		project: func(st State) R { return project(Slice(st, f)) },
	}
}

// Combine builds a cross-feature selector from two selectors. It is
// memoized on the union of their input slices.
func Combine[A, B, R any](a *Selector[A], b *Selector[B], project func(A, B) R) *Selector[R] {
	inputs := make([]func(State) any, 0, len(a.inputs)+len(b.inputs))
	inputs = append(inputs, a.inputs...)
	inputs = append(inputs, b.inputs...)
	return &Selector[R]{
		inputs:  inputs,
		project: func(st State) R { return project(a.Get(st), b.Get(st)) },
	}
}

// Derive builds a selector projecting the output of sel.
func Derive[R, T any](sel *Selector[R], fn func(R) T) *Selector[T] {
	return &Selector[T]{
		inputs:  sel.inputs,
		project: func(st State) T { return fn(sel.Get(st)) },
	}
}

// Get returns the projection for st.
func (s *Selector[R]) Get(st State) R {
	cur := make([]any, len(s.inputs))
	for i, in := range s.inputs {
		cur[i] = in(st)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.valid && sameInputs(s.last, cur) {
		return s.value
	}
	s.value = s.project(st)
	s.last = cur
	s.valid = true
	return s.value
}

func sameInputs(prev, cur []any) bool {
	if len(prev) != len(cur) {
		return false
	}
	for i := range prev {
		if prev[i] != cur[i] {
			return false
		}
	}
	return true
}
