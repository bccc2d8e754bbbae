package cliconfig

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/comixed/comixed-client/pkg/comixed"
	"github.com/comixed/comixed-client/pkg/i18n"
)

// DefaultServerURL is the server used when none is configured.
const DefaultServerURL = comixed.DefaultServerURL

// Config holds CLI configuration for comixed.
type Config struct {
	ServerURL    string
	WebSocketURL string
	AuthToken    string
	Locale       string

	HTTPTimeout time.Duration
	CallTimeout time.Duration
	MaxInFlight int
	RateLimit   float64
	RateBurst   int

	StateDir    string
	ImportDir   string
	MetricsAddr string
	LogLevel    string

	AssumeYes bool
	Live      bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	c := comixed.DefaultConfig()
	return Config{
		ServerURL:   DefaultServerURL,
		Locale:      i18n.BaseLocale,
		HTTPTimeout: c.HTTPTimeout,
		CallTimeout: c.CallTimeout,
		MaxInFlight: c.MaxInFlight,
		RateLimit:   c.RateLimit,
		RateBurst:   c.RateBurst,
		StateDir:    "", // Derived from the home directory during Validate
		LogLevel:    "info",
	}
}

// DefaultStateDir returns ~/.comixed, or "" when there is no home directory.
func DefaultStateDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".comixed")
	}
	return ""
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	c.ServerURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("server url %q must be an http or https url", c.ServerURL)
	}
	if c.WebSocketURL == "" {
		c.WebSocketURL = comixed.WebSocketURL(u)
	}

	if c.StateDir == "" {
		c.StateDir = DefaultStateDir()
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.CallTimeout < 0 {
		return fmt.Errorf("call timeout must not be negative")
	}
	if c.MaxInFlight < 0 {
		return fmt.Errorf("max in flight must not be negative")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		return fmt.Errorf("rate burst must be positive when rate limiting")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// ClientConfig converts the CLI configuration to the library's.
func (c Config) ClientConfig() comixed.Config {
	return comixed.Config{
		ServerURL:    c.ServerURL,
		WebSocketURL: c.WebSocketURL,
		AuthToken:    c.AuthToken,
		Locale:       c.Locale,
		HTTPTimeout:  c.HTTPTimeout,
		CallTimeout:  c.CallTimeout,
		MaxInFlight:  c.MaxInFlight,
		RateLimit:    c.RateLimit,
		RateBurst:    c.RateBurst,
		StateDir:     c.StateDir,
		Live:         c.Live,
	}
}

// Masked returns a copy safe to log.
func (c Config) Masked() Config {
	if c.AuthToken != "" {
		c.AuthToken = "*****"
	}
	return c
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
