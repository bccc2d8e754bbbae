package comixed

import (
	"context"

	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/log"
	"github.com/comixed/comixed-client/pkg/store"
)

// Plugin extends a Client with optional behavior. Plugins are initialized
// in registration order after the store is running and shut down in
// reverse order before it stops.
//
// A plugin that also implements effect.Observer is handed every effect
// outcome.
type Plugin interface {
	Name() string
	Initialize(ctx context.Context, cfg PluginConfig) error
	Shutdown(ctx context.Context) error
}

// PluginConfig is what a plugin gets to work with.
type PluginConfig struct {
	ServerURL string
	StateDir  string
	Locale    string

	Logger log.Logger

	// Store is the running store. Plugins dispatch to it and may subscribe
	// to its action stream.
	Store *store.Store

	Translator effect.Translator
	Alerter    effect.Alerter
}

// BasePlugin implements Plugin with no-op lifecycle methods.
type BasePlugin struct {
	name string
}

// NewBasePlugin returns a BasePlugin with the given name.
func NewBasePlugin(name string) BasePlugin {
	return BasePlugin{name: name}
}

func (p BasePlugin) Name() string                                 { return p.name }
func (BasePlugin) Initialize(context.Context, PluginConfig) error { return nil }
func (BasePlugin) Shutdown(context.Context) error                 { return nil }
