// Package alert surfaces transient user-facing notices.
package alert

import (
	"fmt"
	"io"
	"sync"

	"github.com/comixed/comixed-client/pkg/log"
)

// Level distinguishes informational notices from errors.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "info"
}

// Alert is one notice.
type Alert struct {
	Level   Level
	Message string
}

// Sink receives alerts after they are logged.
type Sink func(Alert)

// Service logs every alert and forwards it to an optional sink.
type Service struct {
	logger log.Logger
	mu     sync.RWMutex
	sink   Sink
}

// NewService creates a Service. A nil logger disables logging.
func NewService(logger log.Logger, sink Sink) *Service {
	return &Service{
		logger: log.OrNoop(logger).With(log.String("component", "alert")),
		sink:   sink,
	}
}

// SetSink replaces the sink.
func (s *Service) SetSink(sink Sink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

// Info raises an informational alert.
func (s *Service) Info(message string) {
	s.logger.Info(message)
	s.emit(Alert{Level: LevelInfo, Message: message})
}

// Error raises an error alert.
func (s *Service) Error(message string) {
	s.logger.Error(message)
	s.emit(Alert{Level: LevelError, Message: message})
}

func (s *Service) emit(a Alert) {
	s.mu.RLock()
	sink := s.sink
	s.mu.RUnlock()
	if sink != nil {
		sink(a)
	}
}

// WriterSink prints alerts as "[level] message" lines.
func WriterSink(w io.Writer) Sink {
	var mu sync.Mutex
	return func(a Alert) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "[%s] %s\n", a.Level, a.Message)
	}
}

// Recorder is a Sink that keeps every alert. Useful in tests.
type Recorder struct {
	mu     sync.Mutex
	alerts []Alert
}

// Sink returns the recording sink.
func (r *Recorder) Sink() Sink {
	return func(a Alert) {
		r.mu.Lock()
		r.alerts = append(r.alerts, a)
		r.mu.Unlock()
	}
}

// Alerts returns a copy of what was recorded.
func (r *Recorder) Alerts() []Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Alert(nil), r.alerts...)
}

// Messages returns the recorded messages at level.
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, a := range r.Alerts() {
		if a.Level == level {
			out = append(out, a.Message)
		}
	}
	return out
}
