package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/reclaim/internal/clean"
	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/diagnostics"
	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
	"github.com/lakshaymaurya-felt/reclaim/internal/orchestrate"
	"github.com/lakshaymaurya-felt/reclaim/internal/space"
	"github.com/lakshaymaurya-felt/reclaim/internal/system"
	"github.com/lakshaymaurya-felt/reclaim/internal/ui"
)

var (
	cleanOpts    = config.DefaultOptions()
	consoleLevel string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run the disk cleanup",
	Long: `Run the enabled cleanup steps in their fixed order:

   1. Clear user TEMP folder
   2. Clear Windows TEMP folder
   3. Clear TEMP folders for all profiles
   4. Clear Teams cache
   5. Clear Windows Update download cache
   6. Empty Recycle Bin
   7. Remove stale user profiles
   8. Run component store cleanup
   9. Dehydrate OneDrive folders
  10. Resize page file

Steps 9 and 10 run when forced by flag or accepted at a prompt. The run
stops at the first failed step.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseConsoleLevel(consoleLevel)
		if err != nil {
			return err
		}
		cleanOpts.ConsoleLevel = level
		if err := cleanOpts.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runClean(ctx, cleanOpts)
	},
}

func runClean(ctx context.Context, opts config.Options) error {
	log, err := logging.New(opts.LogDir, opts.ConsoleLevel, os.Stdout)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer log.Close()

	loc := config.DetectLocations()
	platform := system.NewPlatform()

	var prompter space.Prompter = ui.Decline{}
	if !opts.NonInteractive {
		prompter = ui.NewPrompter(os.Stdin, os.Stdout)
	}

	session := clean.NewSession(log, opts.DryRun)
	actions := orchestrate.NewActions(session, system.NewTools(system.ExecRunner{}),
		platform, system.Processes{}, loc, opts)
	advisor := space.NewAdvisor(log, space.DiskVolume{}, opts.Drive,
		space.NewScanner(loc.UsersRoot, platform), prompter)
	collector := diagnostics.NewCollector(log, loc.UsersRoot, loc.WindowsDir)

	err = orchestrate.New(opts, log, actions, advisor, collector).Run(ctx)
	if err != nil {
		log.Logf(logging.LevelError, "Cleanup aborted: %v", err)
	}
	log.Logf(logging.LevelInfo, "Log written to %s", log.Path())
	return err
}

func init() {
	f := cleanCmd.Flags()

	f.BoolVar(&cleanOpts.CleanUserTemp, "clean-user-temp", cleanOpts.CleanUserTemp, "Clear the user TEMP folder")
	f.BoolVar(&cleanOpts.CleanWindowsTemp, "clean-windows-temp", cleanOpts.CleanWindowsTemp, "Clear the Windows TEMP folder")
	f.BoolVar(&cleanOpts.CleanProfileTemp, "clean-profile-temp", cleanOpts.CleanProfileTemp, "Clear TEMP folders of all profiles")
	f.BoolVar(&cleanOpts.CleanTeamsCache, "clean-teams-cache", cleanOpts.CleanTeamsCache, "Stop Teams and clear its cache")
	f.BoolVar(&cleanOpts.CleanUpdateCache, "clean-update-cache", cleanOpts.CleanUpdateCache, "Clear the Windows Update download cache")
	f.BoolVar(&cleanOpts.EmptyRecycleBin, "empty-recycle-bin", cleanOpts.EmptyRecycleBin, "Empty the recycle bin")
	f.BoolVar(&cleanOpts.RemoveStaleProfiles, "remove-stale-profiles", cleanOpts.RemoveStaleProfiles, "Remove profiles unused for --profile-age-days")
	f.BoolVar(&cleanOpts.ComponentCleanup, "component-cleanup", cleanOpts.ComponentCleanup, "Run DISM component store cleanup")
	f.BoolVar(&cleanOpts.DehydrateOneDrive, "dehydrate-onedrive", cleanOpts.DehydrateOneDrive, "Make OneDrive files online-only without prompting")
	f.BoolVar(&cleanOpts.ResizePageFile, "resize-pagefile", cleanOpts.ResizePageFile, "Resize the page file without prompting")

	f.StringVar(&consoleLevel, "console-level", cleanOpts.ConsoleLevel.String(), "Console verbosity: off, steps, substeps or verbose")
	f.StringVar(&cleanOpts.LogDir, "log-dir", cleanOpts.LogDir, "Directory for run logs")
	f.BoolVar(&cleanOpts.DryRun, "dry-run", false, "Log every change without making it")
	f.BoolVar(&cleanOpts.NonInteractive, "non-interactive", false, "Never prompt; optional actions run only when forced")
	f.StringVar(&cleanOpts.Drive, "drive", cleanOpts.Drive, "Drive letter to measure")

	f.IntVar(&cleanOpts.ProfileAgeDays, "profile-age-days", cleanOpts.ProfileAgeDays, "Profiles unused for this many days are stale")
	f.StringSliceVar(&cleanOpts.KeepProfiles, "keep-profile", nil, "Profile folder name pattern never removed (repeatable, * and ? wildcards)")
	f.Uint32Var(&cleanOpts.PageFileMinMB, "pagefile-min-mb", cleanOpts.PageFileMinMB, "Initial page file size in MB")
	f.Uint32Var(&cleanOpts.PageFileMaxMB, "pagefile-max-mb", cleanOpts.PageFileMaxMB, "Maximum page file size in MB")
}
