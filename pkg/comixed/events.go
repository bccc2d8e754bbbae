package comixed

import (
	"time"

	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/lifecycle"
	"github.com/comixed/comixed-client/pkg/store"
)

// StateChangeEvent describes a lifecycle transition of the client or of
// one of its components.
type StateChangeEvent struct {
	// Component is "client" for the Client itself, "store" for its store.
	Component string
	Previous  State
	Current   State
	Reason    string
}

// EffectEvent describes one finished effect invocation.
type EffectEvent struct {
	Effect  string
	Action  string
	Outcome effect.Kind
	Elapsed time.Duration
}

// EventHandler receives client events. Methods are called synchronously
// from the goroutine that caused the event and must not block.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnEffect(event EffectEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to handle
// only some events.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}
func (BaseEventHandler) OnEffect(EffectEvent)           {}

// eventEmitterWrapper adapts EventHandler to the lifecycle emitter and the
// effect observer.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(component string, previous, current lifecycle.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Component: component,
		Previous:  convertState(previous),
		Current:   convertState(current),
		Reason:    reason,
	})
}

func (e *eventEmitterWrapper) Observe(name string, action store.Action, kind effect.Kind, elapsed time.Duration) {
	if e.handler == nil {
		return
	}
	e.handler.OnEffect(EffectEvent{
		Effect:  name,
		Action:  action.Type(),
		Outcome: kind,
		Elapsed: elapsed,
	})
}
