package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/comixed/comixed-client/pkg/lifecycle"
	"github.com/comixed/comixed-client/pkg/log"
)

const (
	defaultInboxSize        = 256
	defaultSubscriberBuffer = 64
)

// Dispatcher accepts actions for the store.
type Dispatcher interface {
	Dispatch(ctx context.Context, action Action) error
}

// Envelope is delivered to subscribers once an action has been reduced.
type Envelope struct {
	// Seq is the 1-based position of the action in dispatch order.
	Seq uint64

	// Action is the dispatched action.
	Action Action

	// State is the snapshot produced by applying Action.
	State State
}

// Option configures a Store.
type Option func(*options)

type options struct {
	logger           log.Logger
	inboxSize        int
	subscriberBuffer int
	emitter          lifecycle.EventEmitter
}

// WithLogger sets the store logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithInboxSize sets how many dispatched actions may queue before Dispatch blocks.
func WithInboxSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.inboxSize = n
		}
	}
}

// WithSubscriberBuffer sets the default subscription buffer used when
// Subscribe is called with a non-positive size.
func WithSubscriberBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.subscriberBuffer = n
		}
	}
}

// WithLifecycleEmitter forwards store lifecycle transitions to emitter.
func WithLifecycleEmitter(emitter lifecycle.EventEmitter) Option {
	return func(o *options) { o.emitter = emitter }
}

// Store is the single shared mutable resource of the runtime. It is only
// changed by dispatching actions through the registered reducers.
type Store struct {
	opts      options
	logger    log.Logger
	lifecycle *lifecycle.DefaultManager

	mu      sync.Mutex
	slots   []slot
	keys    map[string]struct{}
	subs    map[uint64]*Subscription
	nextSub uint64
	stopped bool

	state  atomic.Pointer[State]
	seq    uint64
	inbox  chan Action
	closed chan struct{}
	once   sync.Once
}

// New creates a stopped store with no features.
func New(opts ...Option) *Store {
	o := options{
		inboxSize:        defaultInboxSize,
		subscriberBuffer: defaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(&o)
	}
	logger := log.OrNoop(o.logger).With(log.String("component", "store"))

	s := &Store{
		opts:      o,
		logger:    logger,
		lifecycle: lifecycle.NewManager("store", logger, o.emitter),
		keys:      make(map[string]struct{}),
		subs:      make(map[uint64]*Subscription),
		inbox:     make(chan Action, o.inboxSize),
		closed:    make(chan struct{}),
	}
	s.state.Store(&State{})
	return s
}

// Register adds a feature slice initialised to its default value.
// Features must be registered before Start.
func Register[S comparable](s *Store, f Feature[S]) error {
	if err := f.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lifecycle.State() != lifecycle.StateStopped {
		return fmt.Errorf("%w: cannot register %s", ErrStarted, f.Key)
	}
	if _, ok := s.keys[f.Key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFeature, f.Key)
	}
	sl := f.slot()
	s.keys[f.Key] = struct{}{}
	s.slots = append(s.slots, sl)

	next := s.state.Load().with(f.Key, sl.initial())
	s.state.Store(&next)
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister[S comparable](s *Store, f Feature[S]) {
	if err := Register(s, f); err != nil {
		panic(err)
	}
}

// Start launches the reducer loop. Actions dispatched before Start are
// queued and processed once the loop runs.
func (s *Store) Start(ctx context.Context) error {
	select {
	case <-s.closed:
		return ErrStoreClosed
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return lifecycle.ErrAlreadyRunning
	}
	if err := s.lifecycle.TransitionTo(lifecycle.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.lifecycle.SetCancel(cancel)

	slots := append([]slot(nil), s.slots...)
	s.lifecycle.Go(func() { s.loop(runCtx, slots) })

	s.logger.Info("store started", log.Int("features", len(slots)))
	return s.lifecycle.TransitionTo(lifecycle.StateRunning, "loop started")
}

// Stop halts the reducer loop. Queued actions are reduced and offered to
// subscribers without blocking; subscription channels are then closed.
// A stopped store cannot be restarted.
func (s *Store) Stop() error {
	if !s.lifecycle.CanStop() {
		return lifecycle.ErrNotRunning
	}
	if err := s.lifecycle.TransitionTo(lifecycle.StateStopping, "Stop() called"); err != nil {
		return err
	}
	s.once.Do(func() { close(s.closed) })
	s.lifecycle.Cancel()

	err := s.lifecycle.WaitWithTimeout(lifecycle.ShutdownTimeout)
	if err != nil {
		_ = s.lifecycle.TransitionTo(lifecycle.StateCrashed, "shutdown timeout")
		return err
	}
	return s.lifecycle.TransitionTo(lifecycle.StateStopped, "loop drained")
}

// Status reports the store's lifecycle state.
func (s *Store) Status() lifecycle.State {
	return s.lifecycle.State()
}

// Dispatch enqueues an action. It blocks while the inbox is full until ctx
// is done.
func (s *Store) Dispatch(ctx context.Context, action Action) error {
	if action == nil {
		return ErrNilAction
	}
	select {
	case <-s.closed:
		return ErrStoreClosed
	default:
	}
	select {
	case s.inbox <- action:
		return nil
	case <-s.closed:
		return ErrStoreClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	return *s.state.Load()
}

func (s *Store) loop(ctx context.Context, slots []slot) {
	for {
		select {
		case <-ctx.Done():
			s.drain(slots)
			return
		case a := <-s.inbox:
			env := s.apply(slots, a)
			s.deliver(ctx, env)
		}
	}
}

// drain reduces what is left in the inbox and closes all subscriptions.
func (s *Store) drain(slots []slot) {
	dropped := 0
drainLoop:
	for {
		select {
		case a := <-s.inbox:
			env := s.apply(slots, a)
			for _, sub := range s.subscribers() {
				select {
				case sub.ch <- env:
				default:
					dropped++
				}
			}
		default:
			break drainLoop
		}
	}
	if dropped > 0 {
		s.logger.Warn("envelopes dropped on shutdown", log.Int("count", dropped))
	}

	s.mu.Lock()
	for id, sub := range s.subs {
		close(sub.ch)
		delete(s.subs, id)
	}
	s.stopped = true
	s.mu.Unlock()
}

func (s *Store) apply(slots []slot, a Action) Envelope {
	s.seq++
	cur := *s.state.Load()
	next := reduceAll(cur, slots, a, s.logger)
	s.state.Store(&next)
	return Envelope{Seq: s.seq, Action: a, State: next}
}

// reduceAll applies every slot's reducer to a. The returned State shares
// the map of cur when no slice changed.
func reduceAll(cur State, slots []slot, a Action, logger log.Logger) State {
	_, reset := a.(ResetState)
	var next map[string]any
	for _, sl := range slots {
		prev := cur.slices[sl.key]
		var out any
		if reset {
			out = sl.initial()
		} else {
			out = reduceSlot(sl, prev, a, logger)
		}
		if out == prev {
			continue
		}
		if next == nil {
			next = make(map[string]any, len(cur.slices))
			for k, v := range cur.slices {
				next[k] = v
			}
		}
		next[sl.key] = out
	}
	if next == nil {
		return cur
	}
	return State{slices: next}
}

func reduceSlot(sl slot, prev any, a Action, logger log.Logger) (out any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("reducer panicked",
				log.String("feature", sl.key),
				log.Action(a.Type()),
				log.Any("panic", r),
			)
			out = prev
		}
	}()
	return sl.reduce(prev, a)
}

func (s *Store) deliver(ctx context.Context, env Envelope) {
	for _, sub := range s.subscribers() {
		select {
		case sub.ch <- env:
		case <-sub.done:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Store) subscribers() []*Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		out = append(out, sub)
	}
	return out
}
