package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/ui"
)

const barWidth = 20

// Render prints the report as ranked tables with share-of-total bars.
// Styling is dropped when w is not a terminal.
func Render(w io.Writer, r Report) {
	rend := lipgloss.NewRenderer(w)
	heading := rend.NewStyle().Bold(true).Foreground(ui.ColorPrimary)
	dim := rend.NewStyle().Foreground(ui.ColorMuted)

	fmt.Fprintln(w, heading.Render("Profiles"))
	if len(r.Profiles) == 0 {
		fmt.Fprintln(w, dim.Render("  No profiles found."))
	}
	renderEntries(w, rend, r.Profiles, r.ProfilesTotal())
	fmt.Fprintf(w, "  %s\n  Total: %s\n\n", strings.Repeat("-", 58), core.FormatSize(r.ProfilesTotal()))

	fmt.Fprintln(w, heading.Render(fmt.Sprintf("%s: %s", r.OSRoot, core.FormatSize(r.OSRootBytes))))
	if len(r.OSRootTop) == 0 {
		fmt.Fprintln(w, dim.Render(fmt.Sprintf("  Below %s, subfolders not ranked.", core.FormatSize(OSRootDiagnosticBytes))))
		return
	}
	renderEntries(w, rend, r.OSRootTop, r.OSRootBytes)
}

func renderEntries(w io.Writer, rend *lipgloss.Renderer, entries []Entry, total int64) {
	num := rend.NewStyle().Foreground(ui.ColorMuted)
	for i, e := range entries {
		pct := e.Percentage(total)
		fmt.Fprintf(w, "  %s %s %5.1f%%  %-30s %10s\n",
			num.Render(fmt.Sprintf("%3d.", i+1)),
			ui.Bar(rend, pct, barWidth), pct, e.Name, core.FormatSize(e.Bytes))
	}
}
