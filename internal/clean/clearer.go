package clean

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
)

// ClearResult tallies the per-item outcomes of a Clear.
type ClearResult struct {
	Removed int
	Planned int
	Failed  int
}

// Add folds another result into r.
func (r *ClearResult) Add(o ClearResult) {
	r.Removed += o.Removed
	r.Planned += o.Planned
	r.Failed += o.Failed
}

func (r *ClearResult) record(o Outcome) {
	switch o {
	case Removed:
		r.Removed++
	case Planned:
		r.Planned++
	case Failed:
		r.Failed++
	}
}

// Clearer empties directories, leaving the directories themselves in place.
type Clearer struct {
	session *Session
	remover *Remover
}

// NewClearer returns a Clearer that deletes children with remover.
func NewClearer(s *Session, remover *Remover) *Clearer {
	return &Clearer{session: s, remover: remover}
}

// Clear removes every immediate child of dir, hidden and system entries
// included. A missing dir is a no-op. Items that cannot be removed are
// counted, not returned as errors.
func (c *Clearer) Clear(ctx context.Context, dir string) (ClearResult, error) {
	var res ClearResult

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		c.session.Logf(logging.LevelSubstep, "Directory not found, skipping: %s", dir)
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("list %s: %w", dir, err)
	}

	c.session.Logf(logging.LevelSubstep, "Clearing %d item(s) in %s", len(entries), dir)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.record(c.remover.Remove(ctx, filepath.Join(dir, e.Name())))
	}

	switch {
	case c.session.DryRun:
		c.session.Logf(logging.LevelSubstep, "Planned %d deletion(s) in %s", res.Planned, dir)
	case res.Failed > 0:
		c.session.Logf(logging.LevelSubstep, "Cleared %s: %d removed, %d could not be removed", dir, res.Removed, res.Failed)
	default:
		c.session.Logf(logging.LevelSubstep, "Cleared %s: %d removed", dir, res.Removed)
	}
	return res, nil
}
