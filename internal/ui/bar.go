package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/okr-dashboard/internal/theme"
)

// ProgressBar renders a horizontal completion bar of the given width.
// percent is clamped to [0, 100].
func ProgressBar(percent, width int, filled lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	full := width * percent / 100
	if percent > 0 && full == 0 {
		full = 1
	}

	bar := filled.Render(strings.Repeat("█", full))
	rest := lipgloss.NewStyle().
		Foreground(theme.ColorSubtle).
		Render(strings.Repeat("░", width-full))

	return bar + rest
}
