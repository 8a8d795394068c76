// Package cmd wires the reclaim command line.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "reclaim",
	Short: "Reclaim disk space on Windows endpoints",
	Long: `Reclaim - disk space reclamation for Windows endpoints.

Runs a fixed, operator-selected sequence of cleanup steps (temp folders,
caches, recycle bin, stale profiles, component store), measures free space
before and after, and offers OneDrive dehydration and page file resizing
when large candidates exist. Every run is logged to a file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Register all subcommands
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
