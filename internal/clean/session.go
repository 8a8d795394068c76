// Package clean implements the destructive primitives of a cleanup run:
// the locked-resource remover, with its chain of escalating removal
// strategies, and the directory content clearer built on top of it.
package clean

import (
	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
)

// Session is the per-run context threaded through every component.
type Session struct {
	Log    logging.Sink
	DryRun bool
}

// NewSession returns a Session logging to log.
func NewSession(log logging.Sink, dryRun bool) *Session {
	return &Session{Log: log, DryRun: dryRun}
}

// Logf logs through the session sink.
func (s *Session) Logf(level logging.Level, format string, args ...any) {
	s.Log.Logf(level, format, args...)
}

// Mutate runs fn unless the session is a dry run, in which case the
// intended change is logged as "DryRun: <description>" and fn is skipped.
// Every mutating call of a run goes through here.
func (s *Session) Mutate(description string, fn func() error) error {
	if s.DryRun {
		s.Log.Logf(logging.LevelInfo, "DryRun: %s", description)
		return nil
	}
	return fn()
}
