package effect

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/comixed/comixed-client/pkg/log"
	"github.com/comixed/comixed-client/pkg/store"
)

// Source is the store surface a Runner needs.
type Source interface {
	store.Dispatcher
	Subscribe(buffer int) *store.Subscription
}

// Observer is told about every handled intent.
type Observer interface {
	Observe(effect string, action store.Action, kind Kind, elapsed time.Duration)
}

// Option configures a Runner.
type Option func(*Runner)

// WithAlerter sets the alert sink.
func WithAlerter(a Alerter) Option {
	return func(r *Runner) { r.env.Alerter = a }
}

// WithTranslator sets the message translator.
func WithTranslator(t Translator) Option {
	return func(r *Runner) { r.env.Translator = t }
}

// WithLogger sets the runner logger.
func WithLogger(l log.Logger) Option {
	return func(r *Runner) { r.env.Logger = l }
}

// WithCallTimeout bounds each invocation. A call still running when the
// deadline passes sees a canceled context.
func WithCallTimeout(d time.Duration) Option {
	return func(r *Runner) { r.callTimeout = d }
}

// WithMaxInFlight caps the number of concurrent invocations; 0 means no cap.
func WithMaxInFlight(n int) Option {
	return func(r *Runner) { r.maxInFlight = n }
}

// WithObserver registers an outcome observer.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

// WithBuffer sets the runner's store subscription buffer.
func WithBuffer(n int) Option {
	return func(r *Runner) { r.buffer = n }
}

// Runner drives registered effects from the store's action stream.
type Runner struct {
	src         Source
	env         Env
	effects     []Effect
	callTimeout time.Duration
	maxInFlight int
	buffer      int
	observers   []Observer
}

// NewRunner creates a runner reading from and dispatching to src.
func NewRunner(src Source, opts ...Option) *Runner {
	r := &Runner{src: src, buffer: 128}
	for _, opt := range opts {
		opt(r)
	}
	r.env.Logger = log.OrNoop(r.env.Logger).With(log.String("component", "effects"))
	return r
}

// Register adds effects. It must be called before Run.
func (r *Runner) Register(effects ...Effect) error {
	for _, e := range effects {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	r.effects = append(r.effects, effects...)
	return nil
}

// Effects returns the registered effect names.
func (r *Runner) Effects() []string {
	names := make([]string, len(r.effects))
	for i, e := range r.effects {
		names[i] = e.Name()
	}
	return names
}

// Run processes actions until ctx is done or the store stops, then waits
// for in-flight invocations. An invocation's failure never stops the runner.
func (r *Runner) Run(ctx context.Context) error {
	sub := r.src.Subscribe(r.buffer)
	defer sub.Unsubscribe()

	var sem *semaphore.Weighted
	if r.maxInFlight > 0 {
		sem = semaphore.NewWeighted(int64(r.maxInFlight))
	}

	var g errgroup.Group
	defer func() { _ = g.Wait() }()

	r.env.logger().Info("effect runner started", log.Int("effects", len(r.effects)))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env, ok := <-sub.C:
			if !ok {
				return nil
			}
			for _, e := range r.effects {
				if !e.Matches(env.Action) {
					continue
				}
				e, action, st := e, env.Action, env.State
				g.Go(func() error {
					if sem != nil {
						if err := sem.Acquire(ctx, 1); err != nil {
							return nil
						}
						defer sem.Release(1)
					}
					r.handle(ctx, e, action, st)
					return nil
				})
			}
		}
	}
}

func (r *Runner) handle(ctx context.Context, e Effect, action store.Action, st store.State) {
	logger := r.env.logger()
	defer func() {
		if p := recover(); p != nil {
			logger.Error("effect handler panicked",
				log.String("effect", e.Name()),
				log.Any("panic", p),
			)
		}
	}()

	callCtx := ctx
	if r.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.callTimeout)
		defer cancel()
	}

	env := r.env
	env.State = st

	start := time.Now()
	out, kind := e.Handle(callCtx, action, env)
	elapsed := time.Since(start)

	logger.Debug("effect handled",
		log.String("effect", e.Name()),
		log.Action(action.Type()),
		log.Stringer("outcome", kind),
		log.Duration("elapsed", elapsed),
	)

	if out != nil {
		if err := r.src.Dispatch(ctx, out); err != nil {
			logger.Warn("result dispatch failed",
				log.String("effect", e.Name()),
				log.Action(out.Type()),
				log.Err(err),
			)
		}
	}

	for _, o := range r.observers {
		r.observe(o, e.Name(), action, kind, elapsed)
	}
}

// observe calls o and logs a panic instead of propagating it.
func (r *Runner) observe(o Observer, name string, action store.Action, kind Kind, elapsed time.Duration) {
	defer func() {
		if p := recover(); p != nil {
			r.env.logger().Error("effect observer panicked",
				log.String("effect", name),
				log.Any("panic", p),
			)
		}
	}()
	o.Observe(name, action, kind, elapsed)
}
