// Package trendchart renders the 7-day average-completion series as a
// terminal bar chart.
package trendchart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/okr-dashboard/internal/model"
	"github.com/nhle/okr-dashboard/internal/theme"
)

const (
	// barHeight is the number of character rows in a full-height bar.
	barHeight = 5

	// Column width bounds keep the chart readable at extreme
	// configured widths.
	minColWidth = 5
	maxColWidth = 10
)

var (
	barStyle   = lipgloss.NewStyle().Foreground(theme.ColorBlue)
	labelStyle = lipgloss.NewStyle().Foreground(theme.ColorGray)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
)

// Render draws the weekly series as vertical bars, oldest day first,
// sized to the given total width. Bars are scaled against the series
// maximum, matching the original dashboard chart, so a quiet week
// still shows relative movement.
func Render(values []int, today model.Date, width int) string {
	if len(values) == 0 {
		return ""
	}

	colWidth := width / len(values)
	if colWidth < minColWidth {
		colWidth = minColWidth
	}
	if colWidth > maxColWidth {
		colWidth = maxColWidth
	}

	maxValue := 1
	for _, v := range values {
		if v > maxValue {
			maxValue = v
		}
	}

	heights := make([]int, len(values))
	for i, v := range values {
		h := v * barHeight / maxValue
		if v > 0 && h == 0 {
			h = 1
		}
		heights[i] = h
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("7-day progress"))
	b.WriteString("\n")

	// Value row above the bars.
	for _, v := range values {
		b.WriteString(labelStyle.Render(pad(fmt.Sprintf("%d%%", v), colWidth)))
	}
	b.WriteString("\n")

	for row := barHeight; row >= 1; row-- {
		for _, h := range heights {
			if h >= row {
				b.WriteString(barStyle.Render(pad("███", colWidth)))
			} else {
				b.WriteString(pad("", colWidth))
			}
		}
		b.WriteString("\n")
	}

	// Day-of-week labels, ending on today.
	first := today.AddDays(-(len(values) - 1))
	for i := range values {
		day := first.AddDays(i)
		b.WriteString(labelStyle.Render(pad(day.Format("Mon"), colWidth)))
	}

	return b.String()
}

// pad centers s in a fixed-width column. Width is measured in
// terminal cells, not bytes, so the block glyphs center the same as
// ASCII labels.
func pad(s string, colWidth int) string {
	w := lipgloss.Width(s)
	if w >= colWidth {
		return s
	}
	left := (colWidth - w) / 2
	right := colWidth - w - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
