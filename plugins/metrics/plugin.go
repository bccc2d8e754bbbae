// Package metrics exports prometheus metrics about a running client: how
// many actions were dispatched and how effect invocations ended.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/comixed/comixed-client/pkg/comixed"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/log"
	"github.com/comixed/comixed-client/pkg/store"
)

const namespace = "comixed"

// Config holds configuration options for the metrics plugin.
type Config struct {
	// Addr serves /metrics when set, e.g. ":9464".
	Addr string

	// Registry receives the collectors. Default: a fresh registry.
	Registry *prometheus.Registry
}

// Plugin records metrics and optionally serves them over HTTP.
type Plugin struct {
	addr     string
	registry *prometheus.Registry

	actionsTotal   *prometheus.CounterVec
	effectsTotal   *prometheus.CounterVec
	effectDuration *prometheus.HistogramVec

	mu       sync.Mutex
	logger   log.Logger
	sub      *store.Subscription
	stop     chan struct{}
	server   *http.Server
	listener net.Listener
	wg       sync.WaitGroup
}

var (
	_ comixed.Plugin  = (*Plugin)(nil)
	_ effect.Observer = (*Plugin)(nil)
)

// New creates a metrics plugin and registers its collectors.
func New(cfg Config) *Plugin {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	p := &Plugin{
		addr:     cfg.Addr,
		registry: reg,
		logger:   log.NewNoopLogger(),
		actionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "actions_total",
				Help:      "Actions reduced by the store, by action type.",
			},
			[]string{"type"},
		),
		effectsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "effects",
				Name:      "invocations_total",
				Help:      "Effect invocations by effect and outcome.",
			},
			[]string{"effect", "outcome"},
		),
		effectDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "effects",
				Name:      "duration_seconds",
				Help:      "Effect invocation latency.",
				Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"effect"},
		),
	}
	reg.MustRegister(p.actionsTotal, p.effectsTotal, p.effectDuration)
	return p
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "metrics"
}

// Handler serves the plugin's registry in the prometheus text format.
func (p *Plugin) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Addr returns the address /metrics is served on, or "" when not serving.
func (p *Plugin) Addr() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listener == nil {
		return ""
	}
	return p.listener.Addr().String()
}

// Initialize subscribes to the store and starts the HTTP endpoint.
func (p *Plugin) Initialize(ctx context.Context, cfg comixed.PluginConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger = log.OrNoop(cfg.Logger).With(log.String("plugin", p.Name()))

	if p.addr != "" {
		ln, err := net.Listen("tcp", p.addr)
		if err != nil {
			return fmt.Errorf("metrics listen %s: %w", p.addr, err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", p.Handler())
		p.listener = ln
		p.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		p.wg.Add(1)
		go func(srv *http.Server) {
			defer p.wg.Done()
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				p.logger.Error("metrics server stopped", log.Err(err))
			}
		}(p.server)
		p.logger.Info("serving metrics", log.String("addr", ln.Addr().String()))
	}

	if cfg.Store != nil {
		sub := cfg.Store.Subscribe(0)
		p.sub = sub
		p.stop = make(chan struct{})
		p.wg.Add(1)
		go p.countActions(sub, p.stop)
	}
	return nil
}

func (p *Plugin) countActions(sub *store.Subscription, stop <-chan struct{}) {
	defer p.wg.Done()
	for {
		select {
		case <-stop:
			return
		case env, ok := <-sub.C:
			if !ok {
				return
			}
			p.actionsTotal.WithLabelValues(env.Action.Type()).Inc()
		}
	}
}

// Observe records one effect outcome.
func (p *Plugin) Observe(name string, _ store.Action, kind effect.Kind, elapsed time.Duration) {
	p.effectsTotal.WithLabelValues(name, kind.String()).Inc()
	p.effectDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// Shutdown stops the HTTP endpoint and the action counter.
func (p *Plugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	sub, stop, srv := p.sub, p.stop, p.server
	p.sub, p.stop, p.server, p.listener = nil, nil, nil, nil
	p.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}
	if sub != nil {
		sub.Unsubscribe()
		close(stop)
	}
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}
