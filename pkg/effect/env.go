package effect

import (
	"github.com/comixed/comixed-client/pkg/log"
	"github.com/comixed/comixed-client/pkg/store"
)

// GeneralFailureKey is the message key alerted when a pipeline fails
// outside its service call.
const GeneralFailureKey = "app.general-effect-failure"

// Alerter surfaces transient user-visible notices.
type Alerter interface {
	Info(message string)
	Error(message string)
}

// Translator resolves a message key with interpolation parameters.
type Translator interface {
	Translate(key string, params map[string]any) string
}

// Env is what an effect may touch besides its own service.
type Env struct {
	Alerter    Alerter
	Translator Translator
	Logger     log.Logger

	// State is the snapshot produced by the matched action. It is empty when
	// an effect is handled outside a Runner.
	State store.State
}

func (e Env) alertError(key string, params map[string]any) {
	if e.Alerter == nil {
		return
	}
	e.Alerter.Error(e.translate(key, params))
}

func (e Env) alertInfo(key string, params map[string]any) {
	if e.Alerter == nil {
		return
	}
	e.Alerter.Info(e.translate(key, params))
}

func (e Env) translate(key string, params map[string]any) string {
	return Translate(e.Translator, key, params)
}

// Translate resolves key with t, or returns key when t is nil.
func Translate(t Translator, key string, params map[string]any) string {
	if t == nil {
		return key
	}
	return t.Translate(key, params)
}

func (e Env) logger() log.Logger {
	return log.OrNoop(e.Logger)
}
