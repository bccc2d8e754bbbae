package effect

import (
	"context"
	"errors"
	"fmt"

	"github.com/comixed/comixed-client/pkg/log"
	"github.com/comixed/comixed-client/pkg/store"
)

// ErrInvalidEffect is returned when registering an incomplete effect.
var ErrInvalidEffect = errors.New("effect: invalid effect")

// Effect is the type-erased unit driven by a Runner.
type Effect interface {
	// Name identifies the effect in logs and metrics.
	Name() string

	// Matches reports whether the effect handles the action.
	Matches(action store.Action) bool

	// Handle processes one matched action and returns the action to
	// dispatch, or nil when there is none.
	Handle(ctx context.Context, action store.Action, env Env) (store.Action, Kind)

	// Validate reports configuration errors.
	Validate() error
}

// Pipeline maps intent I to one service call returning R.
type Pipeline[I store.Action, R any] struct {
	// Operation names the pipeline.
	Operation string

	// Call invokes the service with the intent's payload.
	Call func(ctx context.Context, intent I) (R, error)

	// Verify optionally inspects a returned response and reports a
	// logical failure.
	Verify func(response R) error

	// Success builds the success action.
	Success func(intent I, response R) store.Action

	// Failure builds the failure action for every failure kind.
	Failure func(intent I, err error) store.Action

	// AlertKey is the message key alerted on service failure.
	AlertKey string

	// AlertParams supplies interpolation parameters for AlertKey and SuccessKey.
	AlertParams func(intent I) map[string]any

	// AlertOnLogical also alerts AlertKey on logical failures.
	AlertOnLogical bool

	// SuccessKey, when set, raises an info alert on success.
	SuccessKey string
}

// Name implements Effect.
func (p *Pipeline[I, R]) Name() string { return p.Operation }

// Matches implements Effect.
func (p *Pipeline[I, R]) Matches(action store.Action) bool {
	_, ok := action.(I)
	return ok
}

// Validate implements Effect.
func (p *Pipeline[I, R]) Validate() error {
	switch {
	case p.Operation == "":
		return fmt.Errorf("%w: missing operation name", ErrInvalidEffect)
	case p.Call == nil || p.Success == nil || p.Failure == nil:
		return fmt.Errorf("%w: %s: call, success and failure are required", ErrInvalidEffect, p.Operation)
	case p.AlertKey == "":
		return fmt.Errorf("%w: %s: missing alert key", ErrInvalidEffect, p.Operation)
	}
	return nil
}

// Invoke calls the service once and classifies the outcome.
func (p *Pipeline[I, R]) Invoke(ctx context.Context, intent I) (res Result[R]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[R]{Err: &PanicError{Value: r}, Kind: FailedGeneral}
		}
	}()

	value, err := p.Call(ctx, intent)
	if err != nil {
		return Result[R]{Err: err, Kind: FailedService}
	}
	if p.Verify != nil {
		if verr := p.Verify(value); verr != nil {
			return Result[R]{Value: value, Err: verr, Kind: FailedLogical}
		}
	}
	return Result[R]{Value: value, Kind: Succeeded}
}

// Handle implements Effect.
func (p *Pipeline[I, R]) Handle(ctx context.Context, action store.Action, env Env) (out store.Action, kind Kind) {
	intent := action.(I)
	defer func() {
		if r := recover(); r != nil {
			out, kind = p.general(intent, &PanicError{Value: r}, env)
		}
	}()

	res := p.Invoke(ctx, intent)
	params := p.params(intent)

	switch res.Kind {
	case Succeeded:
		result := p.Success(intent, res.Value)
		if p.SuccessKey != "" {
			env.alertInfo(p.SuccessKey, params)
		}
		return result, Succeeded
	case FailedGeneral:
		return p.general(intent, res.Err, env)
	case FailedService:
		env.logger().Error("service call failed",
			log.String("effect", p.Operation),
			log.Action(intent.Type()),
			log.Err(res.Err),
		)
		result := p.Failure(intent, res.Err)
		env.alertError(p.AlertKey, params)
		return result, FailedService
	default:
		env.logger().Warn("service reported failure",
			log.String("effect", p.Operation),
			log.Action(intent.Type()),
			log.Err(res.Err),
		)
		result := p.Failure(intent, res.Err)
		if p.AlertOnLogical {
			env.alertError(p.AlertKey, params)
		}
		return result, FailedLogical
	}
}

// Failed is the result dispatched when a pipeline's Failure builder panics,
// so the intent still gets exactly one result.
type Failed struct {
	Operation string
	Intent    store.Action
	Err       error
}

// Type implements store.Action.
func (Failed) Type() string { return "[Effect] failed" }

// general handles a failure raised outside the service call. A panic in the
// Failure builder yields Failed instead.
func (p *Pipeline[I, R]) general(intent I, cause error, env Env) (out store.Action, kind Kind) {
	env.logger().Error("effect failed",
		log.String("effect", p.Operation),
		log.Action(intent.Type()),
		log.Err(cause),
	)
	defer func() {
		if r := recover(); r != nil {
			env.logger().Error("failure builder panicked",
				log.String("effect", p.Operation),
				log.Any("panic", r),
			)
			out, kind = Failed{Operation: p.Operation, Intent: intent, Err: cause}, FailedGeneral
		}
		env.alertError(GeneralFailureKey, nil)
	}()
	return p.Failure(intent, cause), FailedGeneral
}

func (p *Pipeline[I, R]) params(intent I) map[string]any {
	if p.AlertParams == nil {
		return nil
	}
	return p.AlertParams(intent)
}

// Map is a pure follow-up effect: it maps an action to another action
// without calling a service. Fn returning nil emits nothing.
type Map[I store.Action] struct {
	Label string
	Fn    func(intent I) store.Action
}

// Name implements Effect.
func (m *Map[I]) Name() string { return m.Label }

// Matches implements Effect.
func (m *Map[I]) Matches(action store.Action) bool {
	_, ok := action.(I)
	return ok
}

// Validate implements Effect.
func (m *Map[I]) Validate() error {
	if m.Label == "" || m.Fn == nil {
		return fmt.Errorf("%w: map effect needs a label and a function", ErrInvalidEffect)
	}
	return nil
}

// Handle implements Effect.
func (m *Map[I]) Handle(_ context.Context, action store.Action, env Env) (out store.Action, kind Kind) {
	defer func() {
		if r := recover(); r != nil {
			env.logger().Error("map effect panicked",
				log.String("effect", m.Label),
				log.Any("panic", r),
			)
			out, kind = nil, FailedGeneral
		}
	}()
	return m.Fn(action.(I)), Succeeded
}

// Follow is a Map that also sees the state the intent produced. Fn returns
// nil when there is nothing to dispatch.
type Follow[I store.Action] struct {
	Label string
	Fn    func(intent I, st store.State) store.Action
}

// Name implements Effect.
func (f *Follow[I]) Name() string { return f.Label }

// Matches implements Effect.
func (f *Follow[I]) Matches(action store.Action) bool {
	_, ok := action.(I)
	return ok
}

// Validate implements Effect.
func (f *Follow[I]) Validate() error {
	if f.Label == "" || f.Fn == nil {
		return fmt.Errorf("%w: follow effect needs a label and a function", ErrInvalidEffect)
	}
	return nil
}

// Handle implements Effect.
func (f *Follow[I]) Handle(_ context.Context, action store.Action, env Env) (out store.Action, kind Kind) {
	defer func() {
		if r := recover(); r != nil {
			env.logger().Error("follow effect panicked",
				log.String("effect", f.Label),
				log.Any("panic", r),
			)
			out, kind = nil, FailedGeneral
		}
	}()
	return f.Fn(action.(I), env.State), Succeeded
}
