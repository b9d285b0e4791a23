package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"

	"github.com/nhle/okr-dashboard/internal/model"
	"github.com/nhle/okr-dashboard/internal/okr"
	"github.com/nhle/okr-dashboard/internal/trend"
	"github.com/nhle/okr-dashboard/internal/ui"
	"github.com/nhle/okr-dashboard/internal/ui/detail"
	helpview "github.com/nhle/okr-dashboard/internal/ui/help"
	"github.com/nhle/okr-dashboard/internal/ui/objectiveform"
	"github.com/nhle/okr-dashboard/internal/ui/objectivelist"
	"github.com/nhle/okr-dashboard/internal/ui/trendchart"
)

// chartLines is the vertical space reserved for the trend chart above
// the objective list: title, value row, bars, and day labels.
const chartLines = 9

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewForm
	ViewConfirm
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the repository.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	repo         *okr.Repository
	logger       *zap.Logger
	keys         *KeyMap
	listView     objectivelist.Model
	detailView   detail.Model
	formView     objectiveform.Model
	helpView     helpview.Model

	// confirm is the delete confirmation dialog. confirmAccept lives
	// on the heap so huh's value pointer stays valid across model
	// copies, like the form bindings in objectiveform.
	confirm       *huh.Form
	confirmAccept *bool
	confirmTarget model.Objective

	statusText string
	chartWidth int
	ready      bool
}

// New creates a new root application model with the given repository
// and display preferences. The repository is expected to have been
// loaded already.
func New(repo *okr.Repository, logger *zap.Logger, display model.DisplayConfig) Model {
	keys := DefaultKeyMap()

	chartWidth := display.ChartWidth
	if chartWidth <= 0 {
		chartWidth = 42
	}

	m := Model{
		currentView: ViewList,
		repo:        repo,
		logger:      logger,
		keys:        keys,
		chartWidth:  chartWidth,
		listView:    objectivelist.New(keys, 80, 24),
		detailView:  detail.New(keys, 80, 24),
		formView:    objectiveform.New(80, 24),
		helpView:    helpview.New(keys, 80, 24),
	}
	m.listView.SetObjectives(repo.Objectives(), repo.Today())
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.listView.SetSize(contentWidth, contentHeight-chartLines)
		m.detailView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case objectivelist.SelectedMsg:
		o, ok := m.repo.Get(msg.ObjectiveID)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.statusText = ""
		m.detailView.SetObjective(o, m.repo.Today())
		return m, nil

	case objectivelist.DeleteRequestMsg:
		o, ok := m.repo.Get(msg.ObjectiveID)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewConfirm
		return m, m.startConfirmDelete(o)

	case objectiveform.CreatedMsg:
		m.currentView = ViewList
		m.addObjective(msg.Title, msg.Deadline)
		return m, nil

	case objectiveform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case detail.ToggleMsg:
		m.toggleKeyResult(msg.ObjectiveID, msg.KeyResultID)
		return m, nil

	case detail.AddKeyResultMsg:
		m.addKeyResult(msg.ObjectiveID, msg.Text)
		return m, nil

	case tea.KeyMsg:
		// Global keys that work regardless of current view.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.currentView == ViewList {
				return m, tea.Quit
			}

		case "?":
			if m.currentView == ViewForm || m.currentView == ViewConfirm {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case "n":
			if m.currentView == ViewList {
				m.previousView = m.currentView
				m.currentView = ViewForm
				m.statusText = ""
				return m, m.formView.StartCreate()
			}
		}
	}

	// Delegate to active sub-view.
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.listView, cmd = m.listView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewConfirm:
		return m.updateConfirm(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// updateConfirm drives the delete confirmation dialog. Deletion only
// happens after an explicit affirmative answer.
func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.confirm == nil {
		m.currentView = ViewList
		return m, nil
	}

	mdl, cmd := m.confirm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirm = f
	}

	if m.confirm.State == huh.StateCompleted {
		if m.confirmAccept != nil && *m.confirmAccept {
			m.deleteObjective(m.confirmTarget.ID)
		}
		m.confirm = nil
		m.currentView = ViewList
		return m, nil
	}
	if m.confirm.State == huh.StateAborted {
		m.confirm = nil
		m.currentView = ViewList
		return m, nil
	}

	return m, cmd
}

// startConfirmDelete builds the confirmation dialog for one objective.
func (m *Model) startConfirmDelete(o model.Objective) tea.Cmd {
	accept := false
	m.confirmAccept = &accept
	m.confirmTarget = o

	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete objective %q?", o.Title)).
				Description("Its key results will be removed with it.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.confirmAccept),
		),
	)
	return m.confirm.Init()
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("OKR Dashboard", m.repo.Today().Format("Mon, Jan 2"))
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		today := m.repo.Today()
		chart := trendchart.Render(trend.Weekly(m.repo.Objectives(), today), today, m.chartWidth)
		return chart + "\n\n" + m.listView.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewForm:
		return m.formView.View()
	case ViewConfirm:
		if m.confirm == nil {
			return ""
		}
		return m.confirm.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	// Show validation messages prominently when present.
	if m.statusText != "" {
		return m.statusText
	}

	switch m.currentView {
	case ViewDetail:
		return "esc back | j/k move | x toggle | a add key result"
	case ViewForm:
		return "enter submit | esc cancel"
	case ViewConfirm:
		return "←/→ choose | enter confirm"
	case ViewHelp:
		return "? close help"
	default:
		return "q quit | ? help | n new | enter key results | d delete"
	}
}
