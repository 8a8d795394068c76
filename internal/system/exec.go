// Package system wraps the external facilities a cleanup run depends on:
// command-line tools (takeown, icacls, robocopy, dism, attrib, cmd), the
// process table, and Windows-only APIs (recycle bin, page file, profile
// registry).
package system

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// maxOutputInError bounds how much tool output is kept in an ExitError.
const maxOutputInError = 200

// Result is the outcome of a finished external command.
type Result struct {
	ExitCode int
	Output   []byte
}

// Runner starts an external command and waits for it to exit.
// A non-zero exit is reported in Result, not as an error; the error is
// reserved for commands that could not be run at all.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec. No timeout is applied: a tool
// runs until it exits or ctx is cancelled.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err == nil {
		return Result{Output: output}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode(), Output: output}, nil
	}
	return Result{Output: output}, fmt.Errorf("run %s: %w", name, err)
}

// ExitError reports a tool that exited with a failure code.
type ExitError struct {
	Tool   string
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s failed (exit code %d): %s", e.Tool, e.Code, e.Output)
	}
	return fmt.Sprintf("%s failed (exit code %d)", e.Tool, e.Code)
}

// newExitError builds an ExitError with output truncated at a valid UTF-8
// boundary.
func newExitError(tool string, res Result) *ExitError {
	out := strings.TrimSpace(string(res.Output))
	if len(out) > maxOutputInError {
		out = out[:maxOutputInError]
		for len(out) > 0 && !utf8.ValidString(out) {
			out = out[:len(out)-1]
		}
		out += "..."
	}
	return &ExitError{Tool: tool, Code: res.ExitCode, Output: out}
}
