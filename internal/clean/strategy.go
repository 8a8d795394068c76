package clean

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/system"
)

// ErrNotApplicable is returned by a strategy that cannot act on a target,
// e.g. mirroring a plain file.
var ErrNotApplicable = errors.New("not applicable")

// ErrOwnership marks a failure to take ownership of a target or to grant
// Administrators access to it.
var ErrOwnership = errors.New("ownership not acquired")

// Target is a file-system object being removed.
type Target struct {
	Path  string
	IsDir bool
}

// Strategy is one removal technique in the escalation chain.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, t Target) error
}

// DefaultStrategies returns the escalation chain, in order:
// take ownership and grant Administrators full control, mirror an empty
// directory over the target, delete directly, delete via the extended-length
// path, and finally delete with cmd's rd/del.
func DefaultStrategies(tools *system.Tools) []Strategy {
	return []Strategy{
		ownershipStrategy{tools: tools},
		mirrorStrategy{tools: tools},
		directStrategy{},
		longPathStrategy{},
		shellStrategy{tools: tools},
	}
}

// ─── Ownership ───────────────────────────────────────────────────────────────

type ownershipStrategy struct {
	tools *system.Tools
}

func (ownershipStrategy) Name() string { return "ownership" }

// Attempt never deletes anything; it unlocks the target for later strategies.
func (s ownershipStrategy) Attempt(ctx context.Context, t Target) error {
	ownErr := s.tools.TakeOwnership(ctx, t.Path, t.IsDir)
	aclErr := s.tools.GrantAdministrators(ctx, t.Path, t.IsDir)
	if err := errors.Join(ownErr, aclErr); err != nil {
		return fmt.Errorf("%w: %w", ErrOwnership, err)
	}
	return nil
}

// ─── Mirror-empty ────────────────────────────────────────────────────────────

type mirrorStrategy struct {
	tools *system.Tools
}

func (mirrorStrategy) Name() string { return "mirror-empty" }

// Attempt clears a directory by mirroring a fresh empty directory over it.
// The scratch directory is removed on every path out.
func (s mirrorStrategy) Attempt(ctx context.Context, t Target) (err error) {
	if !t.IsDir {
		return ErrNotApplicable
	}

	scratch, err := os.MkdirTemp("", "reclaim-empty-*")
	if err != nil {
		return fmt.Errorf("create scratch directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil && err == nil {
			err = fmt.Errorf("remove scratch directory %s: %w", scratch, rmErr)
		}
	}()

	return s.tools.Mirror(ctx, scratch, t.Path)
}

// ─── Direct ──────────────────────────────────────────────────────────────────

type directStrategy struct{}

func (directStrategy) Name() string { return "direct" }

func (directStrategy) Attempt(_ context.Context, t Target) error {
	return os.RemoveAll(t.Path)
}

// ─── Long path ───────────────────────────────────────────────────────────────

type longPathStrategy struct{}

func (longPathStrategy) Name() string { return "long-path" }

func (longPathStrategy) Attempt(_ context.Context, t Target) error {
	ext := core.ExtendedPath(t.Path)
	if ext == t.Path {
		return ErrNotApplicable
	}
	return os.RemoveAll(ext)
}

// ─── Command line ────────────────────────────────────────────────────────────

type shellStrategy struct {
	tools *system.Tools
}

func (shellStrategy) Name() string { return "command-line" }

func (s shellStrategy) Attempt(ctx context.Context, t Target) error {
	return s.tools.RemoveWithShell(ctx, core.ExtendedPath(t.Path), t.IsDir)
}
