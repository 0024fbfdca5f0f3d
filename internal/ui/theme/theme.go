package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title   = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(Subtext0)
	Hot     = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Success = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Warn    = lipgloss.NewStyle().Foreground(Yellow)
	Danger  = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Badge   = lipgloss.NewStyle().Foreground(Base).Background(Lavender).Padding(0, 1)
	Free    = Badge.Background(Green)
)

// Lesson renders a lesson marker for the given state.
func Lesson(state string) string {
	switch state {
	case "completed":
		return Success.Render("✓")
	case "unlocked":
		return Title.Render("▶")
	default:
		return Muted.Render("🔒")
	}
}

// ProgressBar draws a fixed-width bar for a 0..100 percentage.
func ProgressBar(percent, width int) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	bar := lipgloss.NewStyle().Foreground(Green).Render(strings.Repeat("█", filled))
	rest := Muted.Render(strings.Repeat("░", width-filled))
	return bar + rest
}
