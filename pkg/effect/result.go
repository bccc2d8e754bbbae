package effect

import "fmt"

// Kind classifies the outcome of one pipeline invocation.
type Kind int

const (
	Succeeded Kind = iota
	FailedLogical
	FailedService
	FailedGeneral
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Succeeded:
		return "succeeded"
	case FailedLogical:
		return "failed-logical"
	case FailedService:
		return "failed-service"
	case FailedGeneral:
		return "failed-general"
	default:
		return "unknown"
	}
}

// Failed reports whether k is one of the failure kinds.
func (k Kind) Failed() bool {
	return k != Succeeded
}

// Result wraps the outcome of a service call.
type Result[R any] struct {
	Value R
	Err   error
	Kind  Kind
}

// PanicError carries a recovered panic value as an error.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("effect panicked: %v", e.Value)
}
