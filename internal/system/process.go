package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// Process is a running process.
type Process struct {
	PID  int32
	Name string
}

// ProcessManager lists and terminates processes.
type ProcessManager interface {
	List(ctx context.Context) ([]Process, error)
	Kill(ctx context.Context, pid int32) error
}

// Processes is the gopsutil-backed ProcessManager.
type Processes struct{}

// List implements ProcessManager. Processes whose name cannot be read
// (typically protected system processes) are omitted.
func (Processes) List(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		out = append(out, Process{PID: p.Pid, Name: name})
	}
	return out, nil
}

// Kill implements ProcessManager.
func (Processes) Kill(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return fmt.Errorf("open process %d: %w", pid, err)
	}
	if err := p.KillWithContext(ctx); err != nil {
		return fmt.Errorf("kill process %d: %w", pid, err)
	}
	return nil
}

// FindByName returns the processes whose image name equals one of names,
// case-insensitively.
func FindByName(ctx context.Context, pm ProcessManager, names ...string) ([]Process, error) {
	procs, err := pm.List(ctx)
	if err != nil {
		return nil, err
	}

	var matches []Process
	for _, p := range procs {
		for _, n := range names {
			if strings.EqualFold(p.Name, n) {
				matches = append(matches, p)
				break
			}
		}
	}
	return matches, nil
}
