// Package systemtest provides recording fakes of the system package
// interfaces.
package systemtest

import (
	"context"
	"strings"
	"sync"

	"github.com/lakshaymaurya-felt/reclaim/internal/system"
)

// Call is one recorded command invocation.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a command line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner records every command and answers with Handler, or exit code 0.
type Runner struct {
	mu      sync.Mutex
	calls   []Call
	Handler func(name string, args []string) (system.Result, error)
}

// Run implements system.Runner.
func (r *Runner) Run(_ context.Context, name string, args ...string) (system.Result, error) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Name: name, Args: append([]string(nil), args...)})
	handler := r.Handler
	r.mu.Unlock()

	if handler != nil {
		return handler(name, args)
	}
	return system.Result{}, nil
}

// Calls returns every recorded call.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Names returns the tool name of every recorded call.
func (r *Runner) Names() []string {
	var out []string
	for _, c := range r.Calls() {
		out = append(out, c.Name)
	}
	return out
}

// Platform is an in-memory system.Platform.
type Platform struct {
	mu sync.Mutex

	RecycleErr   error
	PageFileList []system.PageFile
	PageFilesErr error
	Automatic    bool
	ProfileList  []system.Profile
	ProfilesErr  error
	CurrentSID   string

	RecycleCalls   int
	AutomaticSets  []bool
	SizeSets       []string
	DeletedProfile []string
}

func (p *Platform) EmptyRecycleBin(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RecycleCalls++
	return p.RecycleErr
}

func (p *Platform) PageFiles(context.Context) ([]system.PageFile, error) {
	return p.PageFileList, p.PageFilesErr
}

func (p *Platform) AutomaticPageFile(context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Automatic, nil
}

func (p *Platform) SetAutomaticPageFile(_ context.Context, enabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Automatic = enabled
	p.AutomaticSets = append(p.AutomaticSets, enabled)
	return nil
}

func (p *Platform) SetPageFileSize(_ context.Context, path string, minMB, maxMB uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.SizeSets = append(p.SizeSets, path)
	return nil
}

func (p *Platform) Profiles(context.Context) ([]system.Profile, error) {
	return p.ProfileList, p.ProfilesErr
}

func (p *Platform) DeleteProfileRegistration(_ context.Context, sid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.DeletedProfile = append(p.DeletedProfile, sid)
	return nil
}

func (p *Platform) CurrentUserSID() (string, error) {
	return p.CurrentSID, nil
}

// Processes is an in-memory system.ProcessManager.
type Processes struct {
	mu     sync.Mutex
	Procs  []system.Process
	Killed []int32
}

func (p *Processes) List(context.Context) ([]system.Process, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]system.Process(nil), p.Procs...), nil
}

func (p *Processes) Kill(_ context.Context, pid int32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Killed = append(p.Killed, pid)
	return nil
}
