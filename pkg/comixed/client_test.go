package comixed_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/internal/feature/comicbook"
	"github.com/comixed/comixed-client/internal/feature/readinglist"
	"github.com/comixed/comixed-client/internal/feature/selection"
	"github.com/comixed/comixed-client/internal/ports"
	"github.com/comixed/comixed-client/pkg/alert"
	"github.com/comixed/comixed-client/pkg/comixed"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/log"
	"github.com/comixed/comixed-client/pkg/store"
)

// =============================================================================
// Test Utilities
// =============================================================================

// testLogger captures log output in tests.
type testLogger struct {
	mu       *sync.Mutex
	messages *[]string
}

func newTestLogger() *testLogger {
	return &testLogger{mu: &sync.Mutex{}, messages: &[]string{}}
}

func (l *testLogger) Debug(msg string, _ ...log.Field) { l.log("DEBUG", msg) }
func (l *testLogger) Info(msg string, _ ...log.Field)  { l.log("INFO", msg) }
func (l *testLogger) Warn(msg string, _ ...log.Field)  { l.log("WARN", msg) }
func (l *testLogger) Error(msg string, _ ...log.Field) { l.log("ERROR", msg) }
func (l *testLogger) With(...log.Field) log.Logger     { return l }

func (l *testLogger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.messages = append(*l.messages, fmt.Sprintf("[%s] %s", level, msg))
}

func (l *testLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), *l.messages...)
}

// trackingPlugin records initialization and shutdown order.
type trackingPlugin struct {
	name          string
	mu            *sync.Mutex
	initOrder     *[]string
	shutdownOrder *[]string
	initError     error
	shutdownError error
	cfg           comixed.PluginConfig
}

func newTrackingPlugin(name string, mu *sync.Mutex, initOrder, shutdownOrder *[]string) *trackingPlugin {
	return &trackingPlugin{name: name, mu: mu, initOrder: initOrder, shutdownOrder: shutdownOrder}
}

func (p *trackingPlugin) Name() string { return p.name }

func (p *trackingPlugin) Initialize(_ context.Context, cfg comixed.PluginConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initError != nil {
		return p.initError
	}
	p.cfg = cfg
	*p.initOrder = append(*p.initOrder, p.name)
	return nil
}

func (p *trackingPlugin) Shutdown(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	*p.shutdownOrder = append(*p.shutdownOrder, p.name)
	return p.shutdownError
}

// observingPlugin is handed every effect outcome.
type observingPlugin struct {
	comixed.BasePlugin
	mu       sync.Mutex
	outcomes map[string]effect.Kind
}

func (p *observingPlugin) Observe(name string, _ store.Action, kind effect.Kind, _ time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.outcomes == nil {
		p.outcomes = map[string]effect.Kind{}
	}
	p.outcomes[name] = kind
}

func (p *observingPlugin) Outcome(name string) (effect.Kind, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	k, ok := p.outcomes[name]
	return k, ok
}

// eventTracker records events.
type eventTracker struct {
	mu      sync.Mutex
	changes []comixed.StateChangeEvent
	effects []comixed.EffectEvent
}

func (e *eventTracker) OnStateChange(event comixed.StateChangeEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.changes = append(e.changes, event)
}

func (e *eventTracker) OnEffect(event comixed.EffectEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.effects = append(e.effects, event)
}

func (e *eventTracker) ClientChanges() []comixed.StateChangeEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []comixed.StateChangeEvent
	for _, c := range e.changes {
		if c.Component == "client" {
			out = append(out, c)
		}
	}
	return out
}

func (e *eventTracker) Effects() []comixed.EffectEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]comixed.EffectEvent(nil), e.effects...)
}

type fakeSub struct{ id, topic string }

func (s fakeSub) ID() string    { return s.id }
func (s fakeSub) Topic() string { return s.topic }

// fakeMessaging delivers pushed bodies to subscribed handlers.
type fakeMessaging struct {
	mu       sync.Mutex
	handlers map[string]ports.MessageHandler
}

func (m *fakeMessaging) Subscribe(_ context.Context, topic string, h ports.MessageHandler) (ports.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handlers == nil {
		m.handlers = map[string]ports.MessageHandler{}
	}
	m.handlers[topic] = h
	return fakeSub{id: topic, topic: topic}, nil
}

func (m *fakeMessaging) Unsubscribe(_ context.Context, sub ports.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.handlers, sub.Topic())
	return nil
}

func (m *fakeMessaging) push(topic string, body any) bool {
	m.mu.Lock()
	h := m.handlers[topic]
	m.mu.Unlock()
	if h == nil {
		return false
	}
	data, _ := json.Marshal(body)
	h(data)
	return true
}

func (m *fakeMessaging) Subscribed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handlers)
}

// fakeServer answers the REST calls the tests exercise.
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/comics/selections", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]int64{1, 2, 3})
	})
	mux.HandleFunc("POST /api/comics/batch", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.ComicBookBatch{
			ComicBooks:  []domain.ComicBook{{ID: 4, Series: "Saga"}, {ID: 5, Series: "Saga"}},
			LastID:      5,
			LastPayload: true,
		})
	})
	mux.HandleFunc("GET /api/lists/reading", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(srv *httptest.Server) comixed.Config {
	cfg := comixed.DefaultConfig()
	cfg.ServerURL = srv.URL
	cfg.HTTPTimeout = 5 * time.Second
	cfg.CallTimeout = 5 * time.Second
	cfg.RateLimit = 0
	return cfg
}

func startClient(t *testing.T, cfg comixed.Config, opts ...comixed.Option) *comixed.Client {
	t.Helper()
	c, err := comixed.New(cfg, opts...)
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(func() {
		if c.Status().CanStop() {
			_ = c.Stop()
		}
	})
	return c
}

func awaitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// =============================================================================
// Construction
// =============================================================================

func TestNew_RejectsInvalidServerURL(t *testing.T) {
	cfg := comixed.DefaultConfig()
	cfg.ServerURL = "ftp://comics.example.com"

	_, err := comixed.New(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
}

func TestConfig_DerivesWebSocketURL(t *testing.T) {
	tests := []struct {
		server string
		want   string
	}{
		{"http://localhost:7171", "ws://localhost:7171/ws"},
		{"https://comics.example.com/", "wss://comics.example.com/ws"},
		{"https://example.com/comixed", "wss://example.com/comixed/ws"},
	}
	for _, tc := range tests {
		cfg := comixed.Config{ServerURL: tc.server}
		cfg.SetDefaults()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, tc.want, cfg.WebSocketURL, tc.server)
	}
}

func TestDispatch_BeforeStart(t *testing.T) {
	c, err := comixed.New(testConfig(fakeServer(t)))
	require.NoError(t, err)

	err = c.Dispatch(context.Background(), selection.LoadComicBookSelections{})
	assert.ErrorIs(t, err, domain.ErrNotRunning)
	assert.Nil(t, c.Store())
}

// =============================================================================
// Effects through the client
// =============================================================================

func TestClient_LoadSelections(t *testing.T) {
	tracker := &eventTracker{}
	c := startClient(t, testConfig(fakeServer(t)), comixed.WithEventHandler(tracker))

	env, err := c.Await(awaitCtx(t), selection.LoadComicBookSelections{},
		selection.ComicBookSelectionsLoaded{}.Type(),
		selection.LoadComicBookSelectionsFailed{}.Type())
	require.NoError(t, err)

	assert.Equal(t, selection.ComicBookSelectionsLoaded{}.Type(), env.Action.Type())
	assert.Equal(t, []int64{1, 2, 3}, selection.SelectIDs.Get(env.State))
	assert.False(t, selection.SelectState.Get(env.State).Busy)

	// Observers are told after the result is dispatched.
	assert.Eventually(t, func() bool {
		for _, e := range tracker.Effects() {
			if e.Effect == "load-comic-book-selections" {
				return e.Outcome == effect.Succeeded
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond, "effect outcome not reported")
}

func TestClient_ServiceFailureRaisesTranslatedAlert(t *testing.T) {
	var rec alert.Recorder
	c := startClient(t, testConfig(fakeServer(t)),
		comixed.WithAlerter(alert.NewService(nil, rec.Sink())))

	env, err := c.Await(awaitCtx(t), readinglist.LoadReadingLists{},
		readinglist.ReadingListsLoaded{}.Type(),
		readinglist.LoadReadingListsFailed{}.Type())
	require.NoError(t, err)

	assert.Equal(t, readinglist.LoadReadingListsFailed{}.Type(), env.Action.Type())
	assert.False(t, readinglist.SelectState.Get(env.State).Busy)
	assert.Equal(t, []string{"Failed to load reading lists."}, rec.Messages(alert.LevelError))
}

func TestClient_LocaleSelectsCatalog(t *testing.T) {
	cfg := testConfig(fakeServer(t))
	cfg.Locale = "fr"
	c, err := comixed.New(cfg)
	require.NoError(t, err)

	msg := c.Translator().Translate(comicbook.KeyLoadFailed, nil)
	assert.NotEqual(t, comicbook.KeyLoadFailed, msg)
}

func TestClient_CursorSavedOnStop(t *testing.T) {
	srv := fakeServer(t)
	cfg := testConfig(srv)
	cfg.StateDir = t.TempDir()

	c := startClient(t, cfg)
	env, err := c.Await(awaitCtx(t), comicbook.LoadComicBooks{MaxRecords: 10},
		comicbook.ComicBooksReceived{}.Type(),
		comicbook.LoadComicBooksFailed{}.Type())
	require.NoError(t, err)
	require.Len(t, comicbook.SelectComicBooks.Get(env.State), 2)
	require.NoError(t, c.Stop())

	again, err := comixed.New(cfg)
	require.NoError(t, err)
	cur, err := again.Cursor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), cur.ComicBooksLastID)
	assert.Equal(t, 2, cur.ComicBooksSeen)
	assert.Equal(t, srv.URL, cur.ServerURL)

	other := cfg
	other.ServerURL = "http://elsewhere.example.com"
	elsewhere, err := comixed.New(other)
	require.NoError(t, err)
	cur, err = elsewhere.Cursor(context.Background())
	require.NoError(t, err)
	assert.Zero(t, cur)
}

// =============================================================================
// Live updates
// =============================================================================

func TestClient_LiveUpdatesReachStore(t *testing.T) {
	m := &fakeMessaging{}
	c := startClient(t, testConfig(fakeServer(t)), comixed.WithMessaging(m))
	require.Positive(t, m.Subscribed())

	sub := c.Store().Subscribe(0)
	defer sub.Unsubscribe()
	require.True(t, m.push(selection.TopicUpdate, []int64{7, 9}))

	env, err := sub.Next(awaitCtx(t), store.OfType(selection.ComicBookSelectionsUpdated{}.Type()))
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 9}, selection.SelectIDs.Get(env.State))

	require.NoError(t, c.Stop())
	assert.Zero(t, m.Subscribed(), "topics left subscribed after Stop")
}

// =============================================================================
// Plugin lifecycle
// =============================================================================

func TestPlugin_InitializationOrder(t *testing.T) {
	var mu sync.Mutex
	var initOrder, shutdownOrder []string
	p1 := newTrackingPlugin("plugin1", &mu, &initOrder, &shutdownOrder)
	p2 := newTrackingPlugin("plugin2", &mu, &initOrder, &shutdownOrder)
	p3 := newTrackingPlugin("plugin3", &mu, &initOrder, &shutdownOrder)

	c := startClient(t, testConfig(fakeServer(t)),
		comixed.WithLogger(newTestLogger()),
		comixed.WithPlugin(p1),
		comixed.WithPlugin(p2),
		comixed.WithPlugin(p3),
	)
	assert.Equal(t, []string{"plugin1", "plugin2", "plugin3"}, initOrder)
	assert.Same(t, c.Store(), p1.cfg.Store)
	assert.NotNil(t, p1.cfg.Translator)

	require.NoError(t, c.Stop())
	assert.Equal(t, []string{"plugin3", "plugin2", "plugin1"}, shutdownOrder)
}

func TestPlugin_InitializationFailure_PreventsStart(t *testing.T) {
	var mu sync.Mutex
	var initOrder, shutdownOrder []string
	p1 := newTrackingPlugin("plugin1", &mu, &initOrder, &shutdownOrder)
	p2 := newTrackingPlugin("plugin2", &mu, &initOrder, &shutdownOrder)
	p2.initError = errors.New("intentional init failure")
	p3 := newTrackingPlugin("plugin3", &mu, &initOrder, &shutdownOrder)

	c, err := comixed.New(testConfig(fakeServer(t)),
		comixed.WithPlugin(p1), comixed.WithPlugin(p2), comixed.WithPlugin(p3))
	require.NoError(t, err)

	err = c.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"plugin1"}, initOrder)
	assert.Equal(t, comixed.StateCrashed, c.Status())
	assert.ErrorIs(t, c.Dispatch(context.Background(), selection.ClearSelections{}), store.ErrStoreClosed)
}

func TestPlugin_ShutdownFailure_ContinuesOtherPlugins(t *testing.T) {
	var mu sync.Mutex
	var initOrder, shutdownOrder []string
	p1 := newTrackingPlugin("plugin1", &mu, &initOrder, &shutdownOrder)
	p2 := newTrackingPlugin("plugin2", &mu, &initOrder, &shutdownOrder)
	p2.shutdownError = errors.New("intentional shutdown failure")

	logger := newTestLogger()
	c := startClient(t, testConfig(fakeServer(t)),
		comixed.WithLogger(logger), comixed.WithPlugin(p1), comixed.WithPlugin(p2))

	require.NoError(t, c.Stop())
	assert.Equal(t, []string{"plugin2", "plugin1"}, shutdownOrder)
	assert.Contains(t, logger.Messages(), "[ERROR] plugin shutdown failed")
}

func TestPlugin_ObserverReceivesOutcomes(t *testing.T) {
	obs := &observingPlugin{BasePlugin: comixed.NewBasePlugin("observer")}
	c := startClient(t, testConfig(fakeServer(t)), comixed.WithPlugin(obs))

	_, err := c.Await(awaitCtx(t), readinglist.LoadReadingLists{},
		readinglist.LoadReadingListsFailed{}.Type())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		kind, ok := obs.Outcome("load-reading-lists")
		return ok && kind == effect.FailedService
	}, 2*time.Second, 10*time.Millisecond)
}

func TestClient_StartAlreadyRunning(t *testing.T) {
	c := startClient(t, testConfig(fakeServer(t)))
	assert.ErrorIs(t, c.Start(context.Background()), domain.ErrAlreadyRunning)
}

func TestClient_StopAlreadyStopped(t *testing.T) {
	c, err := comixed.New(testConfig(fakeServer(t)))
	require.NoError(t, err)
	assert.ErrorIs(t, c.Stop(), domain.ErrNotRunning)
}

func TestClient_RestartBuildsFreshStore(t *testing.T) {
	c := startClient(t, testConfig(fakeServer(t)))
	_, err := c.Await(awaitCtx(t), selection.LoadComicBookSelections{},
		selection.ComicBookSelectionsLoaded{}.Type())
	require.NoError(t, err)
	first := c.Store()
	require.NoError(t, c.Stop())

	// The stopped store stays readable.
	assert.Equal(t, []int64{1, 2, 3}, selection.SelectIDs.Get(c.State()))

	require.NoError(t, c.Start(context.Background()))
	assert.NotSame(t, first, c.Store())
	assert.Empty(t, selection.SelectIDs.Get(c.State()))
	require.NoError(t, c.Stop())
}

func TestClient_EventHandlerReceivesStateChanges(t *testing.T) {
	tracker := &eventTracker{}
	c := startClient(t, testConfig(fakeServer(t)), comixed.WithEventHandler(tracker))
	require.NoError(t, c.Stop())

	changes := tracker.ClientChanges()
	require.Len(t, changes, 4)
	assert.Equal(t, comixed.StateStopped, changes[0].Previous)
	assert.Equal(t, comixed.StateStarting, changes[0].Current)
	assert.Equal(t, comixed.StateRunning, changes[1].Current)
	assert.Equal(t, comixed.StateStopping, changes[2].Current)
	assert.Equal(t, comixed.StateStopped, changes[3].Current)
}

func TestClient_ConcurrentStartAttempts(t *testing.T) {
	c, err := comixed.New(testConfig(fakeServer(t)))
	require.NoError(t, err)

	var mu sync.Mutex
	var started int
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Start(context.Background()) == nil {
				mu.Lock()
				started++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, started)
	require.NoError(t, c.Stop())
}

// =============================================================================
// Base types
// =============================================================================

func TestBasePlugin_DefaultBehavior(t *testing.T) {
	bp := comixed.NewBasePlugin("test-base")
	assert.Equal(t, "test-base", bp.Name())
	assert.NoError(t, bp.Initialize(context.Background(), comixed.PluginConfig{}))
	assert.NoError(t, bp.Shutdown(context.Background()))
}

func TestBaseEventHandler_DefaultBehavior(t *testing.T) {
	var h comixed.BaseEventHandler
	h.OnStateChange(comixed.StateChangeEvent{})
	h.OnEffect(comixed.EffectEvent{})
}

func TestState_StringRepresentation(t *testing.T) {
	tests := []struct {
		state    comixed.State
		expected string
	}{
		{comixed.StateStopped, "Stopped"},
		{comixed.StateStarting, "Starting"},
		{comixed.StateRunning, "Running"},
		{comixed.StateStopping, "Stopping"},
		{comixed.StateCrashed, "Crashed"},
		{comixed.State(99), "Unknown"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, tc.state.String())
	}
}

func TestState_Predicates(t *testing.T) {
	assert.True(t, comixed.StateStopped.CanStart())
	assert.True(t, comixed.StateCrashed.CanStart())
	assert.False(t, comixed.StateRunning.CanStart())

	assert.True(t, comixed.StateRunning.CanStop())
	assert.True(t, comixed.StateStarting.CanStop())
	assert.False(t, comixed.StateStopping.CanStop())

	assert.True(t, comixed.StateRunning.IsRunning())
	assert.False(t, comixed.StateStarting.IsRunning())
}
