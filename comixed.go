// Package comixed is the entry point for embedding a ComiXed client.
//
// Example usage:
//
//	cfg := comixed.DefaultConfig()
//	cfg.ServerURL = "https://comics.example.com"
//	cfg.AuthToken = token
//	client, err := comixed.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Stop()
//
// The full API lives in github.com/comixed/comixed-client/pkg/comixed.
package comixed

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	client "github.com/comixed/comixed-client/pkg/comixed"
	"github.com/comixed/comixed-client/pkg/log"
)

// Config holds the configuration of a client.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = client.Config

// Client runs the state layer against one server.
type Client = client.Client

// Option configures optional behavior of a Client.
type Option = client.Option

// DefaultServerURL is the address of a locally running server.
const DefaultServerURL = client.DefaultServerURL

// DefaultConfig returns a Config with sensible default values.
// At minimum, set ServerURL and AuthToken before calling New.
func DefaultConfig() Config {
	return client.DefaultConfig()
}

// New creates a client. Call Start on it to begin.
func New(cfg Config, opts ...Option) (*Client, error) {
	return client.New(cfg, opts...)
}

// Logger returns a console logger at the given level name, suitable for
// comixed.WithLogger.
func Logger(level string) log.Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(log.ParseLevel(level)).
		With().Timestamp().Logger()
	return log.NewZerologAdapterWithLogger(zl)
}
