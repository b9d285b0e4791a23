package app

import (
	"context"

	"github.com/nhle/okr-dashboard/internal/model"
)

// Mutations run synchronously inside the update loop: the repository
// is in-memory and persists in-line, so each user action completes
// fully (mutate, persist, recompute) before the next event is
// processed.

// addObjective creates a new objective and refreshes the views.
func (m *Model) addObjective(title string, deadline *model.Date) {
	if _, err := m.repo.AddObjective(context.Background(), title, deadline); err != nil {
		m.statusText = err.Error()
	} else {
		m.statusText = ""
	}
	m.refreshViews()
}

// deleteObjective removes an objective after the confirm dialog.
func (m *Model) deleteObjective(id string) {
	m.repo.DeleteObjective(context.Background(), id)
	m.statusText = ""
	m.refreshViews()
}

// addKeyResult appends a key result to an objective.
func (m *Model) addKeyResult(objectiveID, text string) {
	if _, err := m.repo.AddKeyResult(context.Background(), objectiveID, text); err != nil {
		m.statusText = err.Error()
	} else {
		m.statusText = ""
	}
	m.refreshViews()
}

// toggleKeyResult flips one key result's completed state.
func (m *Model) toggleKeyResult(objectiveID, keyResultID string) {
	m.repo.ToggleKeyResult(context.Background(), objectiveID, keyResultID)
	m.statusText = ""
	m.refreshViews()
}

// refreshViews re-reads repository state into the list and detail
// views so progress and trend values are recomputed from current
// state on the next render.
func (m *Model) refreshViews() {
	today := m.repo.Today()
	m.listView.SetObjectives(m.repo.Objectives(), today)
	if o, ok := m.repo.Get(m.detailView.ObjectiveID()); ok {
		m.detailView.SetObjective(o, today)
	}
}
