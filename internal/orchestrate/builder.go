package orchestrate

import (
	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/space"
)

// Step names, in execution order.
const (
	StepUserTemp       = "Clear user TEMP folder"
	StepWindowsTemp    = "Clear Windows TEMP folder"
	StepProfileTemp    = "Clear TEMP folders for all profiles"
	StepTeamsCache     = "Clear Teams cache"
	StepUpdateCache    = "Clear Windows Update download cache"
	StepRecycleBin     = "Empty Recycle Bin"
	StepStaleProfiles  = "Remove stale user profiles"
	StepComponentStore = "Run component store cleanup"
	StepOneDrive       = "Dehydrate OneDrive folders"
	StepPageFile       = "Resize page file"
)

// BuildSteps assembles the cleanup steps in their fixed order. The optional
// actions are enabled by d, which already reflects any forcing flags.
func BuildSteps(opts config.Options, d space.Decisions, a *Actions) []CleanupStep {
	loc := a.loc
	return []CleanupStep{
		{Name: StepUserTemp, Enabled: opts.CleanUserTemp, Action: a.ClearDir(loc.UserTemp)},
		{Name: StepWindowsTemp, Enabled: opts.CleanWindowsTemp, Action: a.ClearDir(loc.WindowsTemp())},
		{Name: StepProfileTemp, Enabled: opts.CleanProfileTemp, Action: ActionFunc(a.ClearProfileTemps)},
		{Name: StepTeamsCache, Enabled: opts.CleanTeamsCache, Action: ActionFunc(a.ClearTeamsCache)},
		{Name: StepUpdateCache, Enabled: opts.CleanUpdateCache, Action: a.ClearDir(loc.UpdateDownloadCache())},
		{Name: StepRecycleBin, Enabled: opts.EmptyRecycleBin, Action: ActionFunc(a.EmptyRecycleBin)},
		{Name: StepStaleProfiles, Enabled: opts.RemoveStaleProfiles, Action: ActionFunc(a.RemoveStaleProfiles)},
		{Name: StepComponentStore, Enabled: opts.ComponentCleanup, Action: ActionFunc(a.ComponentCleanup)},
		optionalStep(space.OneDriveDehydration, d.Enabled(space.OneDriveDehydration), a),
		optionalStep(space.PageFileResize, d.Enabled(space.PageFileResize), a),
	}
}

// InitialDecisions seeds the optional-action state from the forcing flags.
func InitialDecisions(opts config.Options) space.Decisions {
	return space.Decisions{
		OneDriveEnabled: opts.DehydrateOneDrive,
		PageFileEnabled: opts.ResizePageFile,
	}
}

func optionalStep(act space.OptionalAction, enabled bool, a *Actions) CleanupStep {
	if act == space.OneDriveDehydration {
		return CleanupStep{Name: StepOneDrive, Enabled: enabled, Action: ActionFunc(a.DehydrateOneDrive)}
	}
	return CleanupStep{Name: StepPageFile, Enabled: enabled, Action: ActionFunc(a.ResizePageFile)}
}
