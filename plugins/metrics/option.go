package metrics

import "github.com/comixed/comixed-client/pkg/comixed"

// WithMetrics returns a client Option that records prometheus metrics for
// dispatched actions and effect outcomes.
//
// Usage:
//
//	client, err := comixed.New(cfg, metrics.WithMetrics(metrics.Config{Addr: ":9464"}))
func WithMetrics(cfg Config) comixed.Option {
	return comixed.WithPlugin(New(cfg))
}
