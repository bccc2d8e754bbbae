package comixed

import (
	"net/http"

	"github.com/comixed/comixed-client/internal/ports"
	"github.com/comixed/comixed-client/pkg/confirm"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/log"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Messaging is the live update transport.
type Messaging = ports.Messaging

// Logger is the interface for structured logging.
type Logger = log.Logger

// Option configures optional behavior of a Client.
type Option func(*options)

type options struct {
	httpClient   ports.HTTPClient
	logger       log.Logger
	alerter      effect.Alerter
	confirmer    confirm.Confirmer
	messaging    ports.Messaging
	eventHandler EventHandler
	plugins      []Plugin
}

func defaultOptions(client *http.Client) options {
	return options{
		httpClient: client,
		confirmer:  confirm.Never(),
	}
}

// WithHTTPClient sets the client used for REST calls.
// If not provided, a default client with the configured timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAlerter sets where effect alerts go. The default logs them.
func WithAlerter(a effect.Alerter) Option {
	return func(o *options) {
		o.alerter = a
	}
}

// WithConfirmer sets how destructive operations are confirmed. The default
// declines every request.
func WithConfirmer(c confirm.Confirmer) Option {
	return func(o *options) {
		o.confirmer = c
	}
}

// WithMessaging replaces the WebSocket transport. If m has a
// Run(context.Context) error method the client runs it while started.
func WithMessaging(m Messaging) Option {
	return func(o *options) {
		o.messaging = m
	}
}

// WithEventHandler sets a handler for client events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the client starts.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
