// Package engine holds the runtime engine. It currently only reports its
// lifecycle.
package engine

import "log/slog"

// Engine has no state beyond its logger; Initialize and Shutdown may be
// called in any order and any number of times.
type Engine struct {
	log *slog.Logger
}

func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{log: logger.With("component", "engine")}
}

// Initialize always succeeds.
func (e *Engine) Initialize() error {
	e.log.Info("engine initializing")
	e.log.Info("engine initialized")
	return nil
}

func (e *Engine) Shutdown() {
	e.log.Info("engine shutting down")
	e.log.Info("engine shut down")
}
