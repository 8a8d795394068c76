package orchestrate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IGLOU-EU/go-wildcard"

	"github.com/lakshaymaurya-felt/reclaim/internal/clean"
	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
	"github.com/lakshaymaurya-felt/reclaim/internal/space"
	"github.com/lakshaymaurya-felt/reclaim/internal/system"
)

// teamsProcesses are stopped before the Teams cache is cleared.
var teamsProcesses = []string{"Teams.exe", "ms-teams.exe"}

// Actions implements the work behind each cleanup step.
type Actions struct {
	session   *clean.Session
	clearer   *clean.Clearer
	remover   *clean.Remover
	tools     *system.Tools
	platform  system.Platform
	processes system.ProcessManager
	loc       config.Locations
	opts      config.Options
	now       func() time.Time
}

// NewActions wires the step actions for one run.
func NewActions(
	s *clean.Session,
	tools *system.Tools,
	platform system.Platform,
	processes system.ProcessManager,
	loc config.Locations,
	opts config.Options,
) *Actions {
	remover := clean.NewRemover(s, tools)
	return &Actions{
		session:   s,
		clearer:   clean.NewClearer(s, remover),
		remover:   remover,
		tools:     tools,
		platform:  platform,
		processes: processes,
		loc:       loc,
		opts:      opts,
		now:       time.Now,
	}
}

// ClearDir empties one directory.
func (a *Actions) ClearDir(dir string) Action {
	return ActionFunc(func(ctx context.Context) error {
		_, err := a.clearer.Clear(ctx, dir)
		return err
	})
}

// ClearProfileTemps empties the local temp folder of every profile.
func (a *Actions) ClearProfileTemps(ctx context.Context) error {
	profiles, err := a.profileDirs()
	if err != nil {
		return err
	}

	var total clean.ClearResult
	for _, p := range profiles {
		res, err := a.clearer.Clear(ctx, config.ProfileTemp(p))
		if err != nil {
			return err
		}
		total.Add(res)
	}
	a.session.Logf(logging.LevelSubstep, "Profile temp folders: %d removed, %d planned, %d failed",
		total.Removed, total.Planned, total.Failed)
	return nil
}

// ClearTeamsCache stops Teams and empties its cache folders in every
// profile. A Teams process that cannot be stopped is a warning; its files
// are then left to the remover's escalation.
func (a *Actions) ClearTeamsCache(ctx context.Context) error {
	procs, err := system.FindByName(ctx, a.processes, teamsProcesses...)
	if err != nil {
		a.session.Logf(logging.LevelWarning, "Could not list processes: %v", err)
	}
	for _, p := range procs {
		err := a.session.Mutate(fmt.Sprintf("stop %s (PID %d)", p.Name, p.PID), func() error {
			return a.processes.Kill(ctx, p.PID)
		})
		if err != nil {
			a.session.Logf(logging.LevelWarning, "Could not stop %s (PID %d): %v", p.Name, p.PID, err)
			continue
		}
		if !a.session.DryRun {
			a.session.Logf(logging.LevelSubstep, "Stopped %s (PID %d)", p.Name, p.PID)
		}
	}

	profiles, err := a.profileDirs()
	if err != nil {
		return err
	}
	for _, p := range profiles {
		for _, dir := range config.TeamsCacheDirs(p) {
			if _, err := a.clearer.Clear(ctx, dir); err != nil {
				return err
			}
		}
	}
	return nil
}

// EmptyRecycleBin empties the recycle bin on every drive.
func (a *Actions) EmptyRecycleBin(ctx context.Context) error {
	return a.session.Mutate("empty the recycle bin", func() error {
		return a.platform.EmptyRecycleBin(ctx)
	})
}

// RemoveStaleProfiles deletes profiles not used within the configured age,
// together with their registry registration.
func (a *Actions) RemoveStaleProfiles(ctx context.Context) error {
	currentSID, err := a.platform.CurrentUserSID()
	if err != nil {
		return fmt.Errorf("identify current user: %w", err)
	}
	profiles, err := a.platform.Profiles(ctx)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}

	cutoff := a.now().AddDate(0, 0, -a.opts.ProfileAgeDays)
	removed := 0
	for _, p := range profiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		if reason := a.keepProfile(p, currentSID, cutoff); reason != "" {
			a.session.Logf(logging.LevelVerbose, "Keeping profile %s: %s", p.Path, reason)
			continue
		}

		a.session.Logf(logging.LevelSubstep, "Removing stale profile %s (%s)", p.Path, p.SID)
		if a.remover.Remove(ctx, p.Path) == clean.Failed {
			a.session.Logf(logging.LevelWarning, "Keeping registration of %s: folder could not be removed", p.SID)
			continue
		}
		err := a.session.Mutate("delete profile registration "+p.SID, func() error {
			return a.platform.DeleteProfileRegistration(ctx, p.SID)
		})
		if err != nil {
			return fmt.Errorf("delete profile registration %s: %w", p.SID, err)
		}
		removed++
	}
	a.session.Logf(logging.LevelSubstep, "Stale profiles handled: %d", removed)
	return nil
}

// keepProfile returns why p must be kept, or "" if it is stale.
func (a *Actions) keepProfile(p system.Profile, currentSID string, cutoff time.Time) string {
	name := filepath.Base(p.Path)
	switch {
	case p.Special || system.IsSpecialSID(p.SID):
		return "service account"
	case currentSID != "" && strings.EqualFold(p.SID, currentSID):
		return "current user"
	case isUserFolder(name, a.loc.CurrentUser):
		return "current user"
	case p.Loaded:
		return "loaded"
	case p.LastUse.After(cutoff):
		return fmt.Sprintf("used within %d days", a.opts.ProfileAgeDays)
	}
	for _, pattern := range a.opts.KeepProfiles {
		if wildcard.Match(strings.ToLower(pattern), strings.ToLower(name)) {
			return fmt.Sprintf("matches %q", pattern)
		}
	}

	// NTUSER.DAT is rewritten at every logon; fall back to the folder for
	// profiles that never completed one.
	info, err := os.Stat(filepath.Join(p.Path, "NTUSER.DAT"))
	if err != nil {
		info, err = os.Stat(p.Path)
	}
	if err == nil && info.ModTime().After(cutoff) {
		return fmt.Sprintf("used within %d days", a.opts.ProfileAgeDays)
	}
	return ""
}

// isUserFolder reports whether name is user's profile folder, including the
// "user.DOMAIN" and "user.000" forms Windows creates on name collisions.
func isUserFolder(name, user string) bool {
	if user == "" {
		return false
	}
	name, user = strings.ToLower(name), strings.ToLower(user)
	return name == user || strings.HasPrefix(name, user+".")
}

// ComponentCleanup runs DISM component store cleanup.
func (a *Actions) ComponentCleanup(ctx context.Context) error {
	return a.session.Mutate("run DISM component store cleanup", func() error {
		return a.tools.ComponentCleanup(ctx)
	})
}

// DehydrateOneDrive marks every OneDrive folder online-only. A folder attrib
// exits non-zero on is a warning and the remaining folders are still
// processed. Failing to run attrib at all aborts the action.
func (a *Actions) DehydrateOneDrive(ctx context.Context) error {
	folders, err := space.OneDriveFolders(a.loc.UsersRoot)
	if err != nil {
		return err
	}
	if len(folders) == 0 {
		a.session.Logf(logging.LevelSubstep, "No OneDrive folders found under %s", a.loc.UsersRoot)
		return nil
	}

	for _, f := range folders {
		err := a.session.Mutate("dehydrate "+f, func() error {
			return a.tools.Dehydrate(ctx, f)
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var exitErr *system.ExitError
			if !errors.As(err, &exitErr) {
				return fmt.Errorf("dehydrate %s: %w", f, err)
			}
			a.session.Logf(logging.LevelWarning, "Could not dehydrate %s: %v", f, err)
			continue
		}
		a.session.Logf(logging.LevelSubstep, "Dehydrated %s", f)
	}
	return nil
}

// ResizePageFile turns off automatic page file management and fixes every
// page file to the configured size range.
func (a *Actions) ResizePageFile(ctx context.Context) error {
	files, err := a.platform.PageFiles(ctx)
	if err != nil {
		return fmt.Errorf("list page files: %w", err)
	}
	if len(files) == 0 {
		a.session.Logf(logging.LevelSubstep, "No page files configured")
		return nil
	}

	auto, err := a.platform.AutomaticPageFile(ctx)
	if err != nil {
		return fmt.Errorf("query page file management: %w", err)
	}
	if auto {
		err := a.session.Mutate("disable automatic page file management", func() error {
			return a.platform.SetAutomaticPageFile(ctx, false)
		})
		if err != nil {
			return fmt.Errorf("disable automatic page file: %w", err)
		}
	}

	minMB, maxMB := a.opts.PageFileMinMB, a.opts.PageFileMaxMB
	for _, f := range files {
		desc := fmt.Sprintf("set %s to %d-%d MB (currently %d MB)", f.Path, minMB, maxMB, f.AllocatedMB)
		err := a.session.Mutate(desc, func() error {
			return a.platform.SetPageFileSize(ctx, f.Path, minMB, maxMB)
		})
		if err != nil {
			return fmt.Errorf("resize %s: %w", f.Path, err)
		}
	}
	if !a.session.DryRun {
		a.session.Logf(logging.LevelWarning, "Page file changes take effect after a reboot")
	}
	return nil
}

// profileDirs lists the directories directly under the users root.
func (a *Actions) profileDirs() ([]string, error) {
	entries, err := os.ReadDir(a.loc.UsersRoot)
	if errors.Is(err, fs.ErrNotExist) {
		a.session.Logf(logging.LevelSubstep, "Users root not found: %s", a.loc.UsersRoot)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list profiles in %s: %w", a.loc.UsersRoot, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(a.loc.UsersRoot, e.Name()))
		}
	}
	return dirs, nil
}
