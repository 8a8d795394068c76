// Package ui holds the terminal palette and the operator prompts.
package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f3f4f6"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// ─── Icons ───────────────────────────────────────────────────────────────────

const (
	IconBlock   = "█"
	IconEmpty   = "░"
	IconWarning = "!"
	IconChevron = ">"
)

// Bar renders a fill bar of width cells for pct percent, coloured green,
// yellow or red as it fills.
func Bar(r *lipgloss.Renderer, pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = math.Max(0, math.Min(100, pct))
	filled := int(math.Round(pct / 100 * float64(width)))

	color := ColorSuccess
	switch {
	case pct >= 90:
		color = ColorError
	case pct >= 70:
		color = ColorWarning
	}

	full := r.NewStyle().Foreground(color).Render(strings.Repeat(IconBlock, filled))
	empty := r.NewStyle().Foreground(ColorMuted).Render(strings.Repeat(IconEmpty, width-filled))
	return full + empty
}
