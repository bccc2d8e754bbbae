package comixed

import "github.com/comixed/comixed-client/pkg/lifecycle"

// State is the lifecycle state of a Client.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
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

// CanStart reports whether Start may be called in this state.
func (s State) CanStart() bool {
	return s == StateStopped || s == StateCrashed
}

// CanStop reports whether Stop may be called in this state.
func (s State) CanStop() bool {
	return s == StateRunning || s == StateStarting
}

// IsRunning reports whether the client is fully started.
func (s State) IsRunning() bool {
	return s == StateRunning
}

func convertState(s lifecycle.State) State {
	switch s {
	case lifecycle.StateStopped:
		return StateStopped
	case lifecycle.StateStarting:
		return StateStarting
	case lifecycle.StateRunning:
		return StateRunning
	case lifecycle.StateStopping:
		return StateStopping
	case lifecycle.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
