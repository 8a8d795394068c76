// Package config holds the invocation-time options of a cleanup run and the
// Windows locations it operates on. Nothing here is persisted.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
)

// Options are the operator-selected settings for one cleanup run.
type Options struct {
	// Step toggles, in execution order.
	CleanUserTemp       bool
	CleanWindowsTemp    bool
	CleanProfileTemp    bool
	CleanTeamsCache     bool
	CleanUpdateCache    bool
	EmptyRecycleBin     bool
	RemoveStaleProfiles bool
	ComponentCleanup    bool

	// Optional high-impact actions. When false the operator may still be
	// prompted to enable them.
	DehydrateOneDrive bool
	ResizePageFile    bool

	ConsoleLevel   logging.ConsoleLevel
	LogDir         string
	DryRun         bool
	NonInteractive bool

	// Drive is the volume letter measured for free space, without colon.
	Drive string

	ProfileAgeDays int
	KeepProfiles   []string

	PageFileMinMB uint32
	PageFileMaxMB uint32
}

// DefaultOptions returns the settings used when no flags override them.
func DefaultOptions() Options {
	return Options{
		CleanUserTemp:    true,
		CleanWindowsTemp: true,
		CleanProfileTemp: true,
		CleanUpdateCache: true,
		EmptyRecycleBin:  true,
		ConsoleLevel:     logging.ConsoleSteps,
		LogDir:           DefaultLogDir(),
		Drive:            DefaultDrive(),
		ProfileAgeDays:   90,
		PageFileMinMB:    2048,
		PageFileMaxMB:    4096,
	}
}

// Validate normalizes and checks the options.
func (o *Options) Validate() error {
	var errs []error

	o.Drive = strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(o.Drive), ":"))
	if len(o.Drive) != 1 || o.Drive[0] < 'A' || o.Drive[0] > 'Z' {
		errs = append(errs, fmt.Errorf("invalid drive %q: want a single letter such as C", o.Drive))
	}
	if strings.TrimSpace(o.LogDir) == "" {
		errs = append(errs, errors.New("log directory must not be empty"))
	}
	if o.ConsoleLevel < logging.ConsoleOff || o.ConsoleLevel > logging.ConsoleVerbose {
		errs = append(errs, fmt.Errorf("invalid console level %d", int(o.ConsoleLevel)))
	}
	if o.ProfileAgeDays < 0 {
		errs = append(errs, fmt.Errorf("profile age must be >= 0 days (got %d)", o.ProfileAgeDays))
	}
	if o.PageFileMinMB == 0 || o.PageFileMinMB > o.PageFileMaxMB {
		errs = append(errs, fmt.Errorf("invalid page file size %d-%d MB: need 0 < min <= max",
			o.PageFileMinMB, o.PageFileMaxMB))
	}

	return errors.Join(errs...)
}
