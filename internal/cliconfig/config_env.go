package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (COMIXED_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("server", os.Getenv("COMIXED_SERVER_URL"), &cfg.ServerURL)
	s.setString("ws-url", os.Getenv("COMIXED_WEBSOCKET_URL"), &cfg.WebSocketURL)
	s.setString("token", os.Getenv("COMIXED_AUTH_TOKEN"), &cfg.AuthToken)
	s.setString("locale", os.Getenv("COMIXED_LOCALE"), &cfg.Locale)
	s.setString("state-dir", os.Getenv("COMIXED_STATE_DIR"), &cfg.StateDir)
	s.setString("import-dir", os.Getenv("COMIXED_IMPORT_DIR"), &cfg.ImportDir)
	s.setString("metrics-addr", os.Getenv("COMIXED_METRICS_ADDR"), &cfg.MetricsAddr)
	s.setString("log-level", os.Getenv("COMIXED_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("timeout", os.Getenv("COMIXED_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("call-timeout", os.Getenv("COMIXED_CALL_TIMEOUT"), &cfg.CallTimeout); err != nil {
		return err
	}

	if err := s.setIntFromString("max-in-flight", os.Getenv("COMIXED_MAX_IN_FLIGHT"), &cfg.MaxInFlight); err != nil {
		return err
	}
	if err := s.setFloatFromString("rate-limit", os.Getenv("COMIXED_RATE_LIMIT"), &cfg.RateLimit); err != nil {
		return err
	}
	if err := s.setIntFromString("rate-burst", os.Getenv("COMIXED_RATE_BURST"), &cfg.RateBurst); err != nil {
		return err
	}

	s.setBoolFromString("yes", os.Getenv("COMIXED_ASSUME_YES"), &cfg.AssumeYes)
	s.setBoolFromString("live", os.Getenv("COMIXED_LIVE"), &cfg.Live)

	return nil
}
