package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/diagnostics"
	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
)

var (
	analyzeUsersRoot string
	analyzeOSRoot    string
	analyzeLogDir    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank profile and OS folder sizes",
	Long: `Size every user profile and, when the OS root is larger than the
diagnostic threshold, its largest subfolders. Nothing is deleted.

This is the report a cleanup run produces when free space stays low.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		log, err := logging.New(analyzeLogDir, logging.ConsoleOff, os.Stderr)
		if err != nil {
			return fmt.Errorf("initialize logging: %w", err)
		}
		defer log.Close()

		report, err := diagnostics.NewCollector(log, analyzeUsersRoot, analyzeOSRoot).Collect(ctx)
		if err != nil {
			return err
		}
		diagnostics.Render(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	loc := config.DetectLocations()
	analyzeCmd.Flags().StringVar(&analyzeUsersRoot, "users-root", loc.UsersRoot, "Directory holding the user profiles")
	analyzeCmd.Flags().StringVar(&analyzeOSRoot, "os-root", loc.WindowsDir, "OS installation root")
	analyzeCmd.Flags().StringVar(&analyzeLogDir, "log-dir", config.DefaultLogDir(), "Directory for run logs")
}
