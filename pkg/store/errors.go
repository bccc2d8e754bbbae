package store

import "errors"

var (
	// ErrNilAction is returned when Dispatch is called with a nil action.
	ErrNilAction = errors.New("store: nil action")

	// ErrStoreClosed is returned by Dispatch and Start after Stop.
	ErrStoreClosed = errors.New("store: closed")

	// ErrDuplicateFeature is returned when a feature key is registered twice.
	ErrDuplicateFeature = errors.New("store: duplicate feature")

	// ErrInvalidFeature is returned for features missing a key, initial value or reducer.
	ErrInvalidFeature = errors.New("store: invalid feature")

	// ErrStarted is returned when registering a feature on a running store.
	ErrStarted = errors.New("store: already started")
)
