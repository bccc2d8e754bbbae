package comixed

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/i18n"
)

// DefaultServerURL is the address of a locally running ComiXed server.
const DefaultServerURL = "http://localhost:7171"

// Config holds the settings of a Client.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// ServerURL is the base URL of the ComiXed server.
	ServerURL string

	// WebSocketURL is the live update endpoint. Derived from ServerURL when
	// empty.
	WebSocketURL string

	// AuthToken is sent as a bearer token on REST and WebSocket requests.
	AuthToken string

	// Locale selects the alert message catalog.
	Locale string

	// HTTPTimeout bounds one REST round trip.
	HTTPTimeout time.Duration

	// CallTimeout bounds one effect invocation. Zero disables it.
	CallTimeout time.Duration

	// MaxInFlight caps concurrent effect invocations. Zero means unlimited.
	MaxInFlight int

	// RateLimit is the REST request rate per second. Zero disables limiting.
	RateLimit float64
	RateBurst int

	// StateDir holds the sync cursor. Empty disables cursor persistence.
	StateDir string

	// Live connects to WebSocketURL and keeps slices current from server
	// pushes.
	Live bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServerURL:   DefaultServerURL,
		Locale:      i18n.BaseLocale,
		HTTPTimeout: 15 * time.Second,
		CallTimeout: 60 * time.Second,
		MaxInFlight: 8,
		RateLimit:   20,
		RateBurst:   5,
	}
}

// SetDefaults fills unset fields with DefaultConfig values.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.ServerURL == "" {
		c.ServerURL = d.ServerURL
	}
	if c.Locale == "" {
		c.Locale = d.Locale
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = d.HTTPTimeout
	}
	if c.RateBurst <= 0 {
		c.RateBurst = d.RateBurst
	}
}

// Validate normalises the server URL, derives WebSocketURL and checks the
// remaining fields.
func (c *Config) Validate() error {
	c.ServerURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: server url %q", domain.ErrInvalidConfig, c.ServerURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: server url scheme must be http or https", domain.ErrInvalidConfig)
	}
	if c.WebSocketURL == "" {
		c.WebSocketURL = WebSocketURL(u)
	}
	if c.MaxInFlight < 0 {
		return fmt.Errorf("%w: max in flight must not be negative", domain.ErrInvalidConfig)
	}
	if c.CallTimeout < 0 {
		return fmt.Errorf("%w: call timeout must not be negative", domain.ErrInvalidConfig)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}

// WebSocketURL derives the live update endpoint of a server.
func WebSocketURL(server *url.URL) string {
	ws := *server
	switch server.Scheme {
	case "https":
		ws.Scheme = "wss"
	default:
		ws.Scheme = "ws"
	}
	ws.Path = strings.TrimRight(server.Path, "/") + "/ws"
	ws.RawQuery = ""
	return ws.String()
}
