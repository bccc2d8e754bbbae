package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	ServerURL    string  `toml:"server_url"`
	WebSocketURL string  `toml:"websocket_url"`
	AuthToken    string  `toml:"auth_token"`
	Locale       string  `toml:"locale"`
	HTTPTimeout  string  `toml:"http_timeout"`
	CallTimeout  string  `toml:"call_timeout"`
	MaxInFlight  int     `toml:"max_in_flight"`
	RateLimit    float64 `toml:"rate_limit"`
	RateBurst    int     `toml:"rate_burst"`
	StateDir     string  `toml:"state_dir"`
	ImportDir    string  `toml:"import_dir"`
	MetricsAddr  string  `toml:"metrics_addr"`
	LogLevel     string  `toml:"log_level"`
	AssumeYes    *bool   `toml:"assume_yes"`
	Live         *bool   `toml:"live"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.comixed/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if dir := DefaultStateDir(); dir != "" {
		return filepath.Join(dir, "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("server", fc.ServerURL, &cfg.ServerURL)
	s.setString("ws-url", fc.WebSocketURL, &cfg.WebSocketURL)
	s.setString("token", fc.AuthToken, &cfg.AuthToken)
	s.setString("locale", fc.Locale, &cfg.Locale)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("import-dir", fc.ImportDir, &cfg.ImportDir)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("call-timeout", fc.CallTimeout, &cfg.CallTimeout); err != nil {
		return err
	}

	s.setInt("max-in-flight", fc.MaxInFlight, &cfg.MaxInFlight)
	s.setFloat("rate-limit", fc.RateLimit, &cfg.RateLimit)
	s.setInt("rate-burst", fc.RateBurst, &cfg.RateBurst)

	s.setBool("yes", fc.AssumeYes, &cfg.AssumeYes)
	s.setBool("live", fc.Live, &cfg.Live)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
