// Package orchestrate sequences a cleanup run: it assembles the cleanup
// steps from the run options, runs them fail-fast, and drives the space
// advisor and diagnostics around them.
package orchestrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
)

// ErrStepFailed matches every error returned by Runner.
var ErrStepFailed = errors.New("cleanup step failed")

// Action is the work a step performs.
type Action interface {
	Execute(ctx context.Context) error
}

// ActionFunc adapts a function to Action.
type ActionFunc func(ctx context.Context) error

// Execute calls f.
func (f ActionFunc) Execute(ctx context.Context) error { return f(ctx) }

// CleanupStep is a named, toggleable action.
type CleanupStep struct {
	Name    string
	Enabled bool
	Action  Action
}

// StepError wraps the failure of a named step.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

// Unwrap exposes the cause.
func (e *StepError) Unwrap() error { return e.Err }

// Is makes every StepError match ErrStepFailed.
func (e *StepError) Is(target error) bool { return target == ErrStepFailed }

// Runner executes cleanup steps.
type Runner struct {
	log logging.Sink
}

// NewRunner returns a Runner logging to log.
func NewRunner(log logging.Sink) *Runner {
	return &Runner{log: log}
}

// Run executes one step. A disabled step is logged and skipped. An action
// error is logged and returned as a *StepError; the run is expected to stop.
func (r *Runner) Run(ctx context.Context, step CleanupStep) error {
	if !step.Enabled {
		r.log.Logf(logging.LevelSubstep, "Skipping %s (disabled)", step.Name)
		return nil
	}

	r.log.Logf(logging.LevelStep, "Starting %s", step.Name)
	if err := step.Action.Execute(ctx); err != nil {
		r.log.Logf(logging.LevelError, "Failed %s: %v", step.Name, err)
		return &StepError{Step: step.Name, Err: err}
	}
	r.log.Logf(logging.LevelStep, "Completed %s", step.Name)
	return nil
}

// RunAll runs steps in order and stops at the first failure. Work already
// done by earlier steps is not undone.
func (r *Runner) RunAll(ctx context.Context, steps []CleanupStep) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Run(ctx, step); err != nil {
			return err
		}
	}
	return nil
}
