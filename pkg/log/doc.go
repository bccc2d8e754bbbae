// Package log provides the structured logging abstraction used by the
// comixed client runtime.
//
// The store, the effect runner and every adapter log through the [Logger]
// interface so that embedding applications can route output to their own
// logging stack. A zerolog adapter and a no-op logger are provided.
//
// # Usage
//
//	logger := log.NewZerologAdapter(log.ParseLevel("debug"))
//	logger.Info("store started", log.Int("features", 7))
//
// Loggers are scoped with [Logger.With], which returns a child logger that
// adds the given fields to every message:
//
//	effLog := logger.With(log.String("component", "effects"))
package log
