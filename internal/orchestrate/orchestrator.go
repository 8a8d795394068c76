package orchestrate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/diagnostics"
	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
	"github.com/lakshaymaurya-felt/reclaim/internal/space"
)

// Orchestrator runs one complete cleanup.
type Orchestrator struct {
	opts      config.Options
	log       logging.Sink
	actions   *Actions
	runner    *Runner
	advisor   *space.Advisor
	collector *diagnostics.Collector

	osVersion func() string
	elevated  func() bool
	now       func() time.Time
}

// New returns an Orchestrator.
func New(
	opts config.Options,
	log logging.Sink,
	actions *Actions,
	advisor *space.Advisor,
	collector *diagnostics.Collector,
) *Orchestrator {
	return &Orchestrator{
		opts:      opts,
		log:       log,
		actions:   actions,
		runner:    NewRunner(log),
		advisor:   advisor,
		collector: collector,
		osVersion: core.OSVersionString,
		elevated:  core.IsElevated,
		now:       time.Now,
	}
}

// Run measures, prompts, cleans, re-measures and escalates. A failed step
// aborts the run; steps already done are not undone.
func (o *Orchestrator) Run(ctx context.Context) error {
	start := o.now()
	o.log.Logf(logging.LevelInfo, "Run %s on %s", uuid.NewString(), o.osVersion())
	if !o.elevated() {
		o.log.Logf(logging.LevelWarning, "Not running elevated; locked and system files will not be removable")
	}
	if o.opts.DryRun {
		o.log.Logf(logging.LevelInfo, "Dry run: nothing will be changed")
	}

	baseline, err := o.advisor.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("baseline snapshot: %w", err)
	}
	o.log.Logf(logging.LevelInfo, "Before cleanup: %s", baseline)

	decisions := InitialDecisions(o.opts)
	if err := o.advisor.Preflight(ctx, &decisions); err != nil {
		return err
	}

	if err := o.runner.RunAll(ctx, BuildSteps(o.opts, decisions, o.actions)); err != nil {
		return err
	}

	after, err := o.advisor.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("post-cleanup snapshot: %w", err)
	}
	o.log.Logf(logging.LevelInfo, "After cleanup: %s, freed %s", after, core.FormatGB(after.FreedSince(baseline)))

	latest, err := o.advisor.Postflight(ctx, &decisions, baseline, after, o)
	if err != nil {
		return err
	}

	if latest.Low() {
		o.log.Logf(logging.LevelWarning, "Free space still below %.0f%%; collecting usage diagnostics", space.LowSpacePercent)
		if _, err := o.collector.Collect(ctx); err != nil {
			o.log.Logf(logging.LevelWarning, "Diagnostics incomplete: %v", err)
		}
	}

	o.log.Logf(logging.LevelStep, "Total freed: %s, %.2f%% free (%s)",
		core.FormatGB(latest.FreedSince(baseline)), latest.PercentFree, o.now().Sub(start).Round(time.Second))
	return nil
}

// RunOptional runs an optional action accepted at the post-cleanup prompt.
func (o *Orchestrator) RunOptional(ctx context.Context, act space.OptionalAction) error {
	return o.runner.Run(ctx, optionalStep(act, true, o.actions))
}
