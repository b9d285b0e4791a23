package objectivelist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/okr-dashboard/internal/model"
	"github.com/nhle/okr-dashboard/internal/progress"
	"github.com/nhle/okr-dashboard/internal/theme"
	"github.com/nhle/okr-dashboard/internal/ui"
)

// barWidth is the width of the per-objective completion bar.
const barWidth = 24

// ObjectiveItem wraps a model.Objective so it can be used in a bubbles/list.
type ObjectiveItem struct {
	Objective model.Objective
	Today     model.Date
}

// FilterValue returns the string used for fuzzy filtering.
func (i ObjectiveItem) FilterValue() string { return i.Objective.Title }

// ItemDelegate implements list.ItemDelegate for rendering objective cards.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a two-line objective card: title with deadline badge,
// then the completion bar with percent and key-result tally.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	oi, ok := item.(ObjectiveItem)
	if !ok {
		return
	}

	o := oi.Objective
	pct := progress.Percent(o)
	tier := progress.TierOf(pct)

	title := o.Title

	badge := ""
	if days, ok := progress.DaysLeft(o.Deadline, oi.Today); ok {
		badge = theme.DeadlineStyle(days).Render(progress.DeadlineLabel(days))
	}

	created := theme.CreatedDateStyle.Render(o.CreatedDate.Format("Jan 2, 2006"))

	line1 := title
	if badge != "" {
		line1 += " " + badge
	}
	line1 += "  " + created

	bar := ui.ProgressBar(pct, barWidth, theme.TierStyle(tier))
	pctLabel := theme.TierStyle(tier).Render(fmt.Sprintf("%3d%%", pct))
	tally := theme.CreatedDateStyle.Render(
		fmt.Sprintf("%d/%d key results", o.CompletedCount, len(o.KeyResults)))
	line2 := fmt.Sprintf("%s %s  %s", bar, pctLabel, tally)

	block := line1 + "\n" + line2

	if index == m.Index() {
		block = theme.SelectedItemStyle.Render(block)
	} else {
		block = theme.ListItemStyle.Render(block)
	}

	fmt.Fprint(w, block)
}
