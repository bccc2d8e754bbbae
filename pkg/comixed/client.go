package comixed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/comixed/comixed-client/internal/adapters/fs"
	httpAdapter "github.com/comixed/comixed-client/internal/adapters/http"
	"github.com/comixed/comixed-client/internal/adapters/ws"
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/internal/feature/comicbook"
	"github.com/comixed/comixed-client/internal/live"
	"github.com/comixed/comixed-client/internal/ports"
	"github.com/comixed/comixed-client/pkg/alert"
	"github.com/comixed/comixed-client/pkg/confirm"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/i18n"
	"github.com/comixed/comixed-client/pkg/lifecycle"
	"github.com/comixed/comixed-client/pkg/log"
	"github.com/comixed/comixed-client/pkg/store"
)

const component = "client"

// Client runs the ComiXed state layer against one server: a store holding
// every feature slice, the effects that talk to the REST API, and the live
// update bindings. Use New() to create one, then Start().
type Client struct {
	config     Config
	opts       options
	lifecycle  *lifecycle.DefaultManager
	logger     log.Logger
	emitter    *eventEmitterWrapper
	translator *i18n.Translator
	alerter    effect.Alerter
	effects    []effect.Effect
	bindings   []live.Binding
	messaging  ports.Messaging
	cursors    ports.CursorRepository
	plugins    []Plugin

	mu    sync.RWMutex
	store *store.Store
	bound *live.Bound
}

var _ store.Dispatcher = (*Client)(nil)

// New creates a Client with the given configuration.
// The client is created in StateStopped; call Start() to run it.
// Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions(&http.Client{Timeout: cfg.HTTPTimeout})
	for _, opt := range opts {
		opt(&o)
	}

	logger := log.OrNoop(o.logger)
	emitter := &eventEmitterWrapper{handler: o.eventHandler}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load message catalogs: %w", err)
	}
	translator := i18n.NewTranslator(bundle, cfg.Locale)
	logger.Debug("message catalog selected",
		log.String("requested", cfg.Locale),
		log.String("locale", translator.Locale()))

	alerter := o.alerter
	if alerter == nil {
		alerter = alert.NewService(logger, nil)
	}

	rest, err := httpAdapter.NewClient(cfg.ServerURL, o.httpClient,
		httpAdapter.WithToken(cfg.AuthToken),
		httpAdapter.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		httpAdapter.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	messaging := o.messaging
	if messaging == nil && cfg.Live {
		messaging = ws.New(cfg.WebSocketURL,
			ws.WithToken(cfg.AuthToken),
			ws.WithLogger(logger),
		)
	}

	var cursors ports.CursorRepository
	if cfg.StateDir != "" {
		cursors = fs.NewCursorFileRepository(cfg.StateDir)
	}

	return &Client{
		config:     cfg,
		opts:       o,
		lifecycle:  lifecycle.NewManager(component, logger, emitter),
		logger:     logger,
		emitter:    emitter,
		translator: translator,
		alerter:    alerter,
		effects:    featureEffects(rest),
		bindings:   featureBindings(),
		messaging:  messaging,
		cursors:    cursors,
		plugins:    o.plugins,
	}, nil
}

// Start creates a fresh store, starts the effect runtime and the live
// bindings, then initializes plugins. It returns once everything is up.
// The provided context bounds the lifetime of the run.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := c.lifecycle.TransitionTo(lifecycle.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.lifecycle.SetCancel(cancel)

	st := store.New(
		store.WithLogger(c.logger),
		store.WithLifecycleEmitter(c.emitter),
	)
	if err := registerFeatures(st); err != nil {
		return c.abort(nil, fmt.Errorf("register features: %w", err), "feature registration failed")
	}

	runnerOpts := []effect.Option{
		effect.WithAlerter(c.alerter),
		effect.WithTranslator(c.translator),
		effect.WithLogger(c.logger),
		effect.WithCallTimeout(c.config.CallTimeout),
		effect.WithMaxInFlight(c.config.MaxInFlight),
		effect.WithObserver(c.emitter),
	}
	for _, p := range c.plugins {
		if o, ok := p.(effect.Observer); ok {
			runnerOpts = append(runnerOpts, effect.WithObserver(o))
		}
	}
	runner := effect.NewRunner(st, runnerOpts...)
	if err := runner.Register(c.effects...); err != nil {
		return c.abort(nil, fmt.Errorf("register effects: %w", err), "effect registration failed")
	}

	if err := st.Start(runCtx); err != nil {
		return c.abort(nil, err, "store start failed")
	}
	c.store = st

	c.lifecycle.Go(func() {
		if err := runner.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Error("effect runner stopped", log.Err(err))
		}
	})

	if c.messaging != nil {
		if r, ok := c.messaging.(interface{ Run(context.Context) error }); ok {
			c.lifecycle.Go(func() {
				if err := r.Run(runCtx); err != nil {
					c.logger.Error("messaging stopped", log.Err(err))
				}
			})
		}
		bound, err := live.Bind(runCtx, c.messaging, st, c.logger, c.bindings...)
		if err != nil {
			return c.abort(st, err, "live binding failed")
		}
		c.bound = bound
		c.logger.Info("live updates bound", log.Int("topics", len(bound.Topics())))
	}

	pluginCfg := PluginConfig{
		ServerURL:  c.config.ServerURL,
		StateDir:   c.config.StateDir,
		Locale:     c.translator.Locale(),
		Logger:     c.logger,
		Store:      st,
		Translator: c.translator,
		Alerter:    c.alerter,
	}
	for _, p := range c.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			c.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			return c.abort(st, err, "plugin init failed: "+p.Name())
		}
		c.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	c.logger.Info("client started",
		log.String("server", c.config.ServerURL),
		log.Int("effects", len(c.effects)),
		log.Bool("live", c.messaging != nil))
	return c.lifecycle.TransitionTo(lifecycle.StateRunning, "started")
}

// abort undoes a partial Start. Callers hold c.mu.
func (c *Client) abort(st *store.Store, cause error, reason string) error {
	if c.bound != nil {
		_ = c.bound.Close(context.Background())
		c.bound = nil
	}
	if st != nil {
		_ = st.Stop()
	}
	c.lifecycle.Cancel()
	_ = c.lifecycle.WaitWithTimeout(lifecycle.ShutdownTimeout)
	_ = c.lifecycle.TransitionTo(lifecycle.StateCrashed, reason)
	return cause
}

// Stop shuts plugins down in reverse order, releases the live bindings,
// saves the sync cursor and stops the store. It waits up to
// lifecycle.ShutdownTimeout for the runtime goroutines.
// Returns nil on graceful shutdown, ErrShutdownTimeout if forced.
func (c *Client) Stop() error {
	c.mu.Lock()
	if !c.lifecycle.CanStop() {
		c.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := c.lifecycle.TransitionTo(lifecycle.StateStopping, "Stop() called"); err != nil {
		c.mu.Unlock()
		return err
	}
	st, bound := c.store, c.bound
	c.bound = nil
	c.mu.Unlock()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), lifecycle.ShutdownTimeout)
	defer cancel()

	for i := len(c.plugins) - 1; i >= 0; i-- {
		p := c.plugins[i]
		if err := p.Shutdown(shutdownCtx); err != nil {
			c.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
		} else {
			c.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
		}
	}

	if bound != nil {
		if err := bound.Close(shutdownCtx); err != nil {
			c.logger.Warn("unsubscribe failed", log.Err(err))
		}
	}

	if st != nil {
		if err := st.Stop(); err != nil {
			c.logger.Warn("store stop failed", log.Err(err))
		}
		if err := c.saveCursor(shutdownCtx, st.State()); err != nil {
			c.logger.Warn("cursor not saved", log.Err(err))
		}
	}

	c.lifecycle.Cancel()
	if err := c.lifecycle.WaitWithTimeout(lifecycle.ShutdownTimeout); err != nil {
		_ = c.lifecycle.TransitionTo(lifecycle.StateCrashed, "shutdown timeout")
		return domain.ErrShutdownTimeout
	}
	return c.lifecycle.TransitionTo(lifecycle.StateStopped, "graceful shutdown")
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (c *Client) Status() State {
	return convertState(c.lifecycle.State())
}

// Store returns the store of the current or last run, or nil before the
// first Start.
func (c *Client) Store() *store.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store
}

// State returns the current store snapshot.
func (c *Client) State() store.State {
	st := c.Store()
	if st == nil {
		return store.State{}
	}
	return st.State()
}

// Dispatch sends action to the store.
func (c *Client) Dispatch(ctx context.Context, action store.Action) error {
	st := c.Store()
	if st == nil {
		return domain.ErrNotRunning
	}
	return st.Dispatch(ctx, action)
}

// Await dispatches intent and waits for the first following action whose
// type is one of done. The returned envelope carries the state right after
// that action was reduced.
func (c *Client) Await(ctx context.Context, intent store.Action, done ...string) (store.Envelope, error) {
	st := c.Store()
	if st == nil {
		return store.Envelope{}, domain.ErrNotRunning
	}
	sub := st.Subscribe(0)
	defer sub.Unsubscribe()

	if err := st.Dispatch(ctx, intent); err != nil {
		return store.Envelope{}, err
	}
	return sub.Next(ctx, store.OfType(done...))
}

// Translator returns the translator alerts are rendered with.
func (c *Client) Translator() effect.Translator {
	return c.translator
}

// Confirmer returns the configured confirmer.
func (c *Client) Confirmer() confirm.Confirmer {
	return c.opts.confirmer
}

// Logger returns the client logger.
func (c *Client) Logger() log.Logger {
	return c.logger
}

// Config returns the validated configuration.
func (c *Client) Config() Config {
	return c.config
}

// Cursor returns the saved sync cursor. It is zero when none was saved or
// the cursor belongs to a different server.
func (c *Client) Cursor(ctx context.Context) (domain.Cursor, error) {
	if c.cursors == nil {
		return domain.Cursor{}, nil
	}
	cur, err := c.cursors.Load(ctx)
	if err != nil {
		return domain.Cursor{}, err
	}
	if cur.ServerURL != c.config.ServerURL {
		return domain.Cursor{}, nil
	}
	return cur, nil
}

func (c *Client) saveCursor(ctx context.Context, st store.State) error {
	if c.cursors == nil {
		return nil
	}
	books := comicbook.SelectState.Get(st)
	if books.LastID == 0 {
		return nil
	}
	return c.cursors.Save(ctx, domain.Cursor{
		ServerURL:        c.config.ServerURL,
		ComicBooksLastID: books.LastID,
		ComicBooksSeen:   len(books.ComicBooks),
		UpdatedAt:        time.Now().Unix(),
	})
}

// validateModuleVersions checks that all module versions are compatible.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"log":       {log.Version, log.MinCompatibleVersion},
		"lifecycle": {lifecycle.Version, lifecycle.MinCompatibleVersion},
		"store":     {store.Version, store.MinCompatibleVersion},
		"effect":    {effect.Version, effect.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}

// isVersionCompatible checks if version >= minVersion.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
