package objectivelist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/okr-dashboard/internal/keys"
	"github.com/nhle/okr-dashboard/internal/model"
	"github.com/nhle/okr-dashboard/internal/theme"
)

// SelectedMsg is sent when the user opens an objective's key results.
type SelectedMsg struct {
	ObjectiveID string
}

// DeleteRequestMsg is sent when the user asks to delete an objective.
// The root model runs the confirmation dialog before anything is
// actually removed.
type DeleteRequestMsg struct {
	ObjectiveID string
	Title       string
}

// Model is the objective list view component.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new objective list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height)
	l.Title = "Objectives"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetObjectives replaces the rendered items, keeping the cursor on the
// same index when possible.
func (m *Model) SetObjectives(objectives []model.Objective, today model.Date) {
	items := make([]list.Item, len(objectives))
	for i, o := range objectives {
		items[i] = ObjectiveItem{Objective: o, Today: today}
	}
	m.list.SetItems(items)
	if m.list.Index() >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
}

// SelectedObjective returns the objective under the cursor.
func (m Model) SelectedObjective() (model.Objective, bool) {
	item, ok := m.list.SelectedItem().(ObjectiveItem)
	if !ok {
		return model.Objective{}, false
	}
	return item.Objective, true
}

// Update handles messages for the objective list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Select):
			item, ok := m.list.SelectedItem().(ObjectiveItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return SelectedMsg{ObjectiveID: item.Objective.ID}
			}

		case key.Matches(msg, m.keys.DeleteObjective):
			item, ok := m.list.SelectedItem().(ObjectiveItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return DeleteRequestMsg{
					ObjectiveID: item.Objective.ID,
					Title:       item.Objective.Title,
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the objective list.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return theme.HelpStyle.
			Padding(1, 2).
			Render("No objectives yet. Press n to add one.")
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
