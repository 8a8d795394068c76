package space

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
)

// Escalation thresholds.
const (
	// LargeResourceBytes is the size above which a OneDrive folder or page
	// file prompts the operator.
	LargeResourceBytes int64 = 10 * core.BytesPerGB

	// LowSpacePercent is the free-space floor checked after cleanup.
	LowSpacePercent = 10.0
)

// Prompter asks the operator a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Executor runs an optional action immediately.
type Executor interface {
	RunOptional(ctx context.Context, a OptionalAction) error
}

// Decisions is the per-run state of the optional actions. Once an action is
// accepted it is enabled, its declined flag is cleared, and it is never
// prompted for again.
type Decisions struct {
	OneDriveEnabled           bool
	PageFileEnabled           bool
	OneDriveDeclinedInitially bool
	PageFileDeclinedInitially bool
}

// Enabled reports whether a will run.
func (d *Decisions) Enabled(a OptionalAction) bool {
	if a == OneDriveDehydration {
		return d.OneDriveEnabled
	}
	return d.PageFileEnabled
}

// Declined reports whether the operator turned a down at pre-flight.
func (d *Decisions) Declined(a OptionalAction) bool {
	if a == OneDriveDehydration {
		return d.OneDriveDeclinedInitially
	}
	return d.PageFileDeclinedInitially
}

func (d *Decisions) accept(a OptionalAction) {
	if a == OneDriveDehydration {
		d.OneDriveEnabled, d.OneDriveDeclinedInitially = true, false
		return
	}
	d.PageFileEnabled, d.PageFileDeclinedInitially = true, false
}

func (d *Decisions) decline(a OptionalAction) {
	if a == OneDriveDehydration {
		d.OneDriveDeclinedInitially = true
		return
	}
	d.PageFileDeclinedInitially = true
}

// Advisor measures free space and decides on the optional actions.
type Advisor struct {
	log      logging.Sink
	volume   Volume
	drive    string
	scanner  Scanner
	prompter Prompter
	now      func() time.Time
}

// NewAdvisor returns an Advisor for drive.
func NewAdvisor(log logging.Sink, volume Volume, drive string, scanner Scanner, prompter Prompter) *Advisor {
	return &Advisor{
		log:      log,
		volume:   volume,
		drive:    drive,
		scanner:  scanner,
		prompter: prompter,
		now:      time.Now,
	}
}

// Snapshot takes a fresh free-space reading.
func (a *Advisor) Snapshot(ctx context.Context) (Snapshot, error) {
	s, err := Take(ctx, a.volume, a.drive, a.now())
	if err != nil {
		return Snapshot{}, err
	}
	a.log.Logf(logging.LevelSubstep, "Free space on %s", s)
	return s, nil
}

// Preflight offers each optional action that is not already enabled, but
// only when large resources exist for it. "Yes" enables the action for this
// run; "no" records the refusal for the post-cleanup re-prompt.
func (a *Advisor) Preflight(ctx context.Context, d *Decisions) error {
	for _, act := range OptionalActions {
		if d.Enabled(act) {
			a.log.Logf(logging.LevelSubstep, "%s already enabled", capitalize(act.String()))
			continue
		}

		ok, asked, err := a.offer(ctx, act)
		if err != nil {
			return err
		}
		if !asked {
			continue
		}
		if ok {
			d.accept(act)
			a.log.Logf(logging.LevelInfo, "Operator enabled %s", act)
		} else {
			d.decline(act)
			a.log.Logf(logging.LevelInfo, "Operator declined %s", act)
		}
	}
	return nil
}

// Postflight runs when current is below the low-space floor. Every action
// declined at pre-flight is offered again; an accepted action runs at once
// through exec and a fresh snapshot is taken. The latest snapshot is
// returned.
func (a *Advisor) Postflight(ctx context.Context, d *Decisions, baseline, current Snapshot, exec Executor) (Snapshot, error) {
	latest := current
	if !latest.Low() {
		return latest, nil
	}
	a.log.Logf(logging.LevelWarning, "Free space is still below %.0f%% (%.2f%%)", LowSpacePercent, latest.PercentFree)

	for _, act := range OptionalActions {
		if !d.Declined(act) || d.Enabled(act) {
			continue
		}

		ok, asked, err := a.offer(ctx, act)
		if err != nil {
			return latest, err
		}
		if !asked {
			continue
		}
		if !ok {
			a.log.Logf(logging.LevelInfo, "Operator declined %s again", act)
			continue
		}

		d.accept(act)
		a.log.Logf(logging.LevelInfo, "Operator enabled %s", act)
		if err := exec.RunOptional(ctx, act); err != nil {
			return latest, err
		}

		snap, err := a.Snapshot(ctx)
		if err != nil {
			return latest, err
		}
		latest = snap
		a.log.Logf(logging.LevelInfo, "Space freed so far: %s (%.2f%% free)",
			core.FormatGB(latest.FreedSince(baseline)), latest.PercentFree)
	}
	return latest, nil
}

// offer scans for candidates and, if any are found, prompts. asked is false
// when there was nothing worth asking about.
func (a *Advisor) offer(ctx context.Context, act OptionalAction) (ok, asked bool, err error) {
	cands, err := a.scanner.Candidates(ctx, act)
	if err != nil {
		if ctx.Err() != nil {
			return false, false, ctx.Err()
		}
		a.log.Logf(logging.LevelWarning, "Could not scan for %s candidates: %v", act, err)
		return false, false, nil
	}
	if len(cands) == 0 {
		a.log.Logf(logging.LevelVerbose, "No %s candidates above %s", act, core.FormatSize(LargeResourceBytes))
		return false, false, nil
	}

	for _, c := range cands {
		a.log.Logf(logging.LevelInfo, "Large %s candidate: %s (%s)", act, c.Path, core.FormatSize(c.Bytes))
	}

	ok, err = a.prompter.Confirm(question(act, cands))
	if err != nil {
		return false, false, fmt.Errorf("prompt for %s: %w", act, err)
	}
	return ok, true, nil
}

func question(act OptionalAction, cands []Candidate) string {
	var total int64
	for _, c := range cands {
		total += c.Bytes
	}
	switch act {
	case OneDriveDehydration:
		return fmt.Sprintf("Found %d OneDrive folder(s) totalling %s. Make their files online-only to free space?",
			len(cands), core.FormatSize(total))
	default:
		return fmt.Sprintf("Found %d page file(s) totalling %s. Resize the page file (takes effect after reboot)?",
			len(cands), core.FormatSize(total))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
