package clean

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
	"github.com/lakshaymaurya-felt/reclaim/internal/system"
)

// Outcome is the result of removing one path.
type Outcome int

const (
	// Removed means the path existed and is now gone.
	Removed Outcome = iota
	// Absent means there was nothing to remove.
	Absent
	// Planned means a dry run logged the deletion instead of doing it.
	Planned
	// Failed means the path survived every strategy.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Removed:
		return "removed"
	case Absent:
		return "absent"
	case Planned:
		return "planned"
	default:
		return "failed"
	}
}

// Remover deletes files and directories that may be open or permission
// locked. A single unremovable item is never an error for the caller; it is
// logged as a warning and reported as Failed.
type Remover struct {
	session    *Session
	strategies []Strategy
}

// NewRemover returns a Remover using the default escalation chain.
func NewRemover(s *Session, tools *system.Tools) *Remover {
	return NewRemoverWithStrategies(s, DefaultStrategies(tools)...)
}

// NewRemoverWithStrategies returns a Remover trying strategies in order.
func NewRemoverWithStrategies(s *Session, strategies ...Strategy) *Remover {
	return &Remover{session: s, strategies: strategies}
}

// Remove deletes path. Strategies run in order until one leaves the path
// gone; every attempt is logged.
func (r *Remover) Remove(ctx context.Context, path string) Outcome {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		r.session.Logf(logging.LevelVerbose, "Skipping %s: not found", path)
		return Absent
	}

	if r.session.DryRun {
		r.session.Logf(logging.LevelInfo, "DryRun: would delete %s", path)
		return Planned
	}

	target := Target{Path: path}
	if err != nil {
		// Could not even stat it (usually access denied); escalate anyway
		// and let ownership recovery sort it out.
		r.session.Logf(logging.LevelVerbose, "Cannot stat %s: %v", path, err)
	} else {
		target.IsDir = info.IsDir()
	}

	for _, s := range r.strategies {
		if ctx.Err() != nil {
			break
		}
		r.session.Logf(logging.LevelVerbose, "Attempting %s removal of %s", s.Name(), path)
		switch err := s.Attempt(ctx, target); {
		case errors.Is(err, ErrNotApplicable):
			r.session.Logf(logging.LevelVerbose, "%s: not applicable to %s", s.Name(), path)
		case errors.Is(err, ErrOwnership):
			r.session.Logf(logging.LevelWarning, "Could not take ownership of %s: %v", path, err)
		case err != nil:
			r.session.Logf(logging.LevelVerbose, "%s: %v", s.Name(), err)
		}
		if !exists(path) {
			break
		}
	}

	if exists(path) {
		r.session.Logf(logging.LevelWarning, "Unable to remove %s", path)
		return Failed
	}
	r.session.Logf(logging.LevelVerbose, "Deleted %s", path)
	return Removed
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
