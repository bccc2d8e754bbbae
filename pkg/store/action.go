package store

// Action is a tagged, immutable record dispatched into the store.
// Type returns an identifier that is unique across the process,
// by convention "[Feature] verb".
type Action interface {
	Type() string
}

// ResetState returns every registered slice to its initial value.
type ResetState struct{}

// Type implements Action.
func (ResetState) Type() string { return "[Store] reset state" }

// Types returns the type identifiers of the given actions.
func Types(actions ...Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Type()
	}
	return out
}
