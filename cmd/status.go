package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/space"
	"github.com/lakshaymaurya-felt/reclaim/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show free space on every partition",
	Long:  "Show capacity and free space of every mounted partition. Partitions below the low-space floor are highlighted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snaps, err := space.Partitions(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		renderStatus(cmd.OutOrStdout(), snaps)
		return nil
	},
}

// renderStatus prints one row per partition.
func renderStatus(w io.Writer, snaps []space.Snapshot) {
	r := lipgloss.NewRenderer(w)
	if len(snaps) == 0 {
		fmt.Fprintln(w, r.NewStyle().Foreground(ui.ColorMuted).Italic(true).Render("  No partitions found."))
		return
	}

	header := r.NewStyle().Bold(true).Foreground(ui.ColorPrimary).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)
	low := cell.Foreground(ui.ColorError).Bold(true)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(ui.ColorMuted)).
		Headers("Volume", "Total", "Free", "Free %", "Usage", "")

	for _, s := range snaps {
		flag := ""
		if s.Low() {
			flag = ui.IconWarning + " low"
		}
		t.Row(
			s.Drive,
			core.FormatGB(s.TotalGB),
			core.FormatGB(s.FreeGB),
			fmt.Sprintf("%.2f%%", s.PercentFree),
			ui.Bar(r, 100-s.PercentFree, 20),
			flag,
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return header
		}
		if row >= 0 && row < len(snaps) && snaps[row].Low() && col != 4 {
			return low
		}
		return cell
	})

	fmt.Fprintln(w, t.Render())
}
