package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"COMIXED_SERVER_URL":    "http://env:7171",
				"COMIXED_CALL_TIMEOUT":  "10m",
				"COMIXED_RATE_LIMIT":    "2.5",
				"COMIXED_MAX_IN_FLIGHT": "3",
				"COMIXED_LIVE":          "true",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				ServerURL:   "http://env:7171",
				CallTimeout: 10 * time.Minute,
				RateLimit:   2.5,
				MaxInFlight: 3,
				Live:        true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"COMIXED_SERVER_URL": "http://env:7171",
				"COMIXED_LOCALE":     "fr-FR",
			},
			changed: map[string]bool{"server": true},
			initial: Config{ServerURL: "http://flag:7171"},
			expected: Config{
				ServerURL: "http://flag:7171",
				Locale:    "fr-FR",
			},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"COMIXED_HTTP_TIMEOUT": "not-a-duration"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"COMIXED_RATE_BURST": "not-a-number"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid float",
			envVars: map[string]string{"COMIXED_RATE_LIMIT": "not-a-float"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:     "handles bool '1' as true",
			envVars:  map[string]string{"COMIXED_ASSUME_YES": "1"},
			changed:  map[string]bool{},
			expected: Config{AssumeYes: true},
		},
		{
			name:     "handles bool 'false' as false",
			envVars:  map[string]string{"COMIXED_LIVE": "false"},
			changed:  map[string]bool{},
			initial:  Config{Live: true},
			expected: Config{Live: false},
		},
		{
			name: "handles all field types correctly",
			envVars: map[string]string{
				"COMIXED_SERVER_URL":    "http://example.com",
				"COMIXED_WEBSOCKET_URL": "ws://example.com/push",
				"COMIXED_AUTH_TOKEN":    "secret",
				"COMIXED_LOCALE":        "es-ES",
				"COMIXED_HTTP_TIMEOUT":  "30s",
				"COMIXED_CALL_TIMEOUT":  "1m",
				"COMIXED_MAX_IN_FLIGHT": "4",
				"COMIXED_RATE_LIMIT":    "0.5",
				"COMIXED_RATE_BURST":    "2",
				"COMIXED_STATE_DIR":     "/state",
				"COMIXED_IMPORT_DIR":    "/incoming",
				"COMIXED_METRICS_ADDR":  ":9464",
				"COMIXED_LOG_LEVEL":     "debug",
				"COMIXED_ASSUME_YES":    "true",
				"COMIXED_LIVE":          "1",
			},
			changed: map[string]bool{},
			expected: Config{
				ServerURL:    "http://example.com",
				WebSocketURL: "ws://example.com/push",
				AuthToken:    "secret",
				Locale:       "es-ES",
				HTTPTimeout:  30 * time.Second,
				CallTimeout:  time.Minute,
				MaxInFlight:  4,
				RateLimit:    0.5,
				RateBurst:    2,
				StateDir:     "/state",
				ImportDir:    "/incoming",
				MetricsAddr:  ":9464",
				LogLevel:     "debug",
				AssumeYes:    true,
				Live:         true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyEnvConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyEnvConfig() unexpected error: %v", err)
				return
			}
			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

// Integration test: precedence order (CLI > Env > File)
func TestConfigPrecedence(t *testing.T) {
	trueVal := true

	fileConf := FileConfig{
		ServerURL: "http://file:7171",
		Locale:    "fr-FR",
		ImportDir: "/file/incoming",
		Live:      &trueVal,
	}

	t.Setenv("COMIXED_SERVER_URL", "http://env:7171")
	t.Setenv("COMIXED_LOCALE", "pt-BR")
	t.Setenv("COMIXED_STATE_DIR", "/env/state")

	changed := map[string]bool{
		"server": true,
	}

	cfg := Config{
		ServerURL: "http://cli:7171",
	}

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.ServerURL != "http://cli:7171" {
		t.Errorf("ServerURL = %v, want http://cli:7171 (CLI should win)", cfg.ServerURL)
	}
	if cfg.Locale != "pt-BR" {
		t.Errorf("Locale = %v, want pt-BR (env should override file)", cfg.Locale)
	}
	if cfg.StateDir != "/env/state" {
		t.Errorf("StateDir = %v, want /env/state (env should set)", cfg.StateDir)
	}
	if cfg.ImportDir != "/file/incoming" {
		t.Errorf("ImportDir = %v, want /file/incoming (file should set)", cfg.ImportDir)
	}
	if !cfg.Live {
		t.Error("Live = false, want true (file should set)")
	}
}
