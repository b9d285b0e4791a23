package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/okr-dashboard/internal/keys"
	"github.com/nhle/okr-dashboard/internal/model"
	"github.com/nhle/okr-dashboard/internal/progress"
	"github.com/nhle/okr-dashboard/internal/theme"
	"github.com/nhle/okr-dashboard/internal/ui"
)

// BackMsg is sent when the user leaves the detail view.
type BackMsg struct{}

// ToggleMsg is sent when the user toggles a key result's checkbox.
type ToggleMsg struct {
	ObjectiveID string
	KeyResultID string
}

// AddKeyResultMsg is sent when the user submits a new key result.
type AddKeyResultMsg struct {
	ObjectiveID string
	Text        string
}

// Model is the key-result checklist view for a single objective.
type Model struct {
	objective model.Objective
	today     model.Date
	cursor    int
	input     textinput.Model
	adding    bool
	errText   string
	keys      *keys.KeyMap
	width     int
	height    int
}

// New creates a new detail view model.
func New(k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "new key result..."
	ti.Prompt = "> "
	ti.CharLimit = 200

	return Model{
		input:  ti,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetObjective replaces the displayed objective. Called when the view
// is opened and again after every mutation so derived values are
// always recomputed from current state.
func (m *Model) SetObjective(o model.Objective, today model.Date) {
	m.objective = o
	m.today = today
	m.errText = ""
	if m.cursor >= len(o.KeyResults) {
		m.cursor = len(o.KeyResults) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ObjectiveID returns the ID of the displayed objective.
func (m Model) ObjectiveID() string {
	return m.objective.ID
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.adding {
		return m.handleInputKeys(keyMsg)
	}
	return m.handleNormalKeys(keyMsg)
}

// handleInputKeys processes key input while the add field is focused.
func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.errText = "key result text must not be empty"
			return m, nil
		}
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		m.errText = ""
		id := m.objective.ID
		return m, func() tea.Msg {
			return AddKeyResultMsg{ObjectiveID: id, Text: text}
		}

	case "esc":
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		m.errText = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in browse mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.objective.KeyResults)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if len(m.objective.KeyResults) == 0 {
			return m, nil
		}
		objectiveID := m.objective.ID
		keyResultID := m.objective.KeyResults[m.cursor].ID
		return m, func() tea.Msg {
			return ToggleMsg{ObjectiveID: objectiveID, KeyResultID: keyResultID}
		}

	case key.Matches(msg, m.keys.AddKeyResult):
		m.adding = true
		m.errText = ""
		return m, m.input.Focus()
	}

	return m, nil
}

// View renders the objective header, completion bar, and checklist.
func (m Model) View() string {
	o := m.objective
	pct := progress.Percent(o)
	tier := progress.TierOf(pct)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render(o.Title))
	b.WriteString("\n")

	meta := "created " + o.CreatedDate.Format("Jan 2, 2006")
	if days, ok := progress.DaysLeft(o.Deadline, m.today); ok {
		meta += "  ·  " + theme.DeadlineStyle(days).Render(progress.DeadlineLabel(days))
	}
	b.WriteString(theme.CreatedDateStyle.Render(meta))
	b.WriteString("\n\n")

	bar := ui.ProgressBar(pct, 32, theme.TierStyle(tier))
	b.WriteString(fmt.Sprintf("%s %s\n\n",
		bar, theme.TierStyle(tier).Render(fmt.Sprintf("%d%%", pct))))

	if len(o.KeyResults) == 0 {
		b.WriteString(theme.HelpStyle.Render("No key results yet. Press a to add one."))
		b.WriteString("\n")
	}

	for i, kr := range o.KeyResults {
		check := "☐"
		if kr.Completed {
			check = "☑"
		}

		line := check + " " + kr.Text
		if kr.Completed {
			line = theme.DimmedStyle.Render(line)
		}

		cursor := "  "
		if i == m.cursor && !m.adding {
			cursor = "▸ "
		}
		b.WriteString(cursor + line + "\n")
	}

	if m.adding {
		b.WriteString("\n" + m.input.View() + "\n")
	}
	if m.errText != "" {
		b.WriteString("\n" + theme.ErrorStyle.Render(m.errText) + "\n")
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(b.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 8
}
