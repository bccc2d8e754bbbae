package store

// State is an immutable snapshot of every slice in the store.
// The zero State is empty; Slice falls back to feature defaults.
type State struct {
	slices map[string]any
}

// Keys returns the registered slice keys present in the snapshot.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s.slices))
	for k := range s.slices {
		keys = append(keys, k)
	}
	return keys
}

func (s State) with(key string, value any) State {
	next := make(map[string]any, len(s.slices)+1)
	for k, v := range s.slices {
		next[k] = v
	}
	next[key] = value
	return State{slices: next}
}

// Slice returns the feature's slice from st. When the slice is absent, the
// feature's initial value is returned.
func Slice[S comparable](st State, f Feature[S]) S {
	if v, ok := st.slices[f.Key]; ok {
		if s, ok := v.(S); ok {
			return s
		}
	}
	return f.Initial()
}

// With returns a copy of st holding value as f's slice.
func With[S comparable](st State, f Feature[S], value S) State {
	return st.with(f.Key, value)
}
