package lifecycle

import "time"

// State is where the store or the client facade is in its start/stop
// cycle.
type State int

const (
	// StateStopped is the initial state and the state after a clean Stop.
	StateStopped State = iota
	// StateStarting covers slice registration and effect runner startup.
	StateStarting
	// StateRunning means the store loop accepts actions.
	StateRunning
	// StateStopping drains queued actions and waits for in-flight effects.
	StateStopping
	// StateCrashed is entered when startup fails or shutdown times out.
	// Start may be called again from here.
	StateCrashed
)

// String returns the name used in logs and state change events.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// EventEmitter receives every transition of a named component, "store" or
// the client's component name. The client forwards these to its event
// handlers as StateChangeEvent.
type EventEmitter interface {
	OnStateChange(component string, previous, current State, reason string)
}

// Manager guards the start/stop cycle of the store and the client and
// tracks their worker goroutines.
type Manager interface {
	State() State

	// CanStart reports whether Start may proceed: the component is Stopped
	// or Crashed.
	CanStart() bool

	// CanStop reports whether the component is Starting or Running.
	CanStop() bool

	// TransitionTo moves to newState, emitting the change with reason.
	// Moves the state machine does not allow return an error.
	TransitionTo(newState State, reason string) error

	// Go runs fn as a tracked worker, such as the store loop or the
	// effect runner.
	Go(fn func())

	// WaitWithTimeout waits for tracked workers and returns
	// ErrShutdownTimeout when they outlive timeout.
	WaitWithTimeout(timeout time.Duration) error
}
