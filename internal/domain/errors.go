package domain

import "errors"

// Domain errors are returned by the public API and can be checked with
// errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running client.
	ErrAlreadyRunning = errors.New("comixed: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped client.
	ErrNotRunning = errors.New("comixed: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("comixed: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("comixed: invalid configuration")

	// ErrNotSuccessful is returned when the server answers a request with
	// its success flag cleared.
	ErrNotSuccessful = errors.New("comixed: server reported failure")
)
