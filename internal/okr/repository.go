// Package okr owns the in-memory objective list and the mutating
// operations on it. Every successful mutation is followed by a
// whole-list persist through the injected store; a failed persist is
// logged and the in-memory state stays authoritative for the session.
package okr

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/okr-dashboard/internal/model"
	"github.com/nhle/okr-dashboard/internal/store"
)

// Validation errors. These are expected, recoverable conditions that
// the UI surfaces as messages; no mutation occurs when one is returned.
var (
	ErrEmptyTitle        = errors.New("objective title must not be empty")
	ErrEmptyText         = errors.New("key result text must not be empty")
	ErrObjectiveNotFound = errors.New("objective not found")
)

// Repository holds the objective list for one session.
type Repository struct {
	store      store.Store
	logger     *zap.Logger
	now        func() time.Time
	objectives []model.Objective
}

// Option configures a Repository.
type Option func(*Repository)

// WithNow overrides the clock used for created dates. Tests use it to
// pin "today".
func WithNow(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// New creates a Repository backed by the given store.
func New(s store.Store, logger *zap.Logger, opts ...Option) *Repository {
	r := &Repository{
		store:      s,
		logger:     logger,
		now:        time.Now,
		objectives: []model.Objective{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Today returns the current calendar date per the repository clock.
func (r *Repository) Today() model.Date {
	return model.DateOf(r.now())
}

// Objectives returns a deep copy of the current list in display order.
func (r *Repository) Objectives() []model.Objective {
	return model.CloneObjectives(r.objectives)
}

// Get returns a copy of the objective with the given ID.
func (r *Repository) Get(id string) (model.Objective, bool) {
	for i := range r.objectives {
		if r.objectives[i].ID == id {
			return r.objectives[i].Clone(), true
		}
	}
	return model.Objective{}, false
}

// AddObjective appends a new objective with a fresh ID and today's
// created date, then persists. A blank title is rejected with
// ErrEmptyTitle and nothing is mutated.
func (r *Repository) AddObjective(ctx context.Context, title string, deadline *model.Date) (model.Objective, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Objective{}, ErrEmptyTitle
	}

	o := model.Objective{
		ID:          uuid.New().String(),
		Title:       title,
		CreatedDate: r.Today(),
		KeyResults:  []model.KeyResult{},
	}
	if deadline != nil && !deadline.IsZero() {
		d := *deadline
		o.Deadline = &d
	}

	r.objectives = append(r.objectives, o)
	r.persist(ctx)
	return o.Clone(), nil
}

// DeleteObjective removes the objective and its entire key-result
// list, then persists. An unknown ID is a no-op. Confirmation of the
// user's intent happens at the renderer boundary, not here.
func (r *Repository) DeleteObjective(ctx context.Context, id string) {
	for i := range r.objectives {
		if r.objectives[i].ID == id {
			r.objectives = append(r.objectives[:i], r.objectives[i+1:]...)
			r.persist(ctx)
			return
		}
	}
}

// AddKeyResult appends a key result to the given objective, recounts
// the parent's completed cache, and persists. Blank text and unknown
// objective IDs are rejected with no mutation.
func (r *Repository) AddKeyResult(ctx context.Context, objectiveID, text string) (model.KeyResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.KeyResult{}, ErrEmptyText
	}

	o := r.find(objectiveID)
	if o == nil {
		return model.KeyResult{}, ErrObjectiveNotFound
	}

	kr := model.KeyResult{
		ID:   uuid.New().String(),
		Text: text,
	}
	o.KeyResults = append(o.KeyResults, kr)
	o.CompletedCount = o.CountCompleted()
	r.persist(ctx)
	return kr, nil
}

// ToggleKeyResult flips the completed flag of one key result,
// recounts the parent's completed cache, and persists. Unresolved IDs
// are a no-op.
func (r *Repository) ToggleKeyResult(ctx context.Context, objectiveID, keyResultID string) {
	o := r.find(objectiveID)
	if o == nil {
		return
	}
	for i := range o.KeyResults {
		if o.KeyResults[i].ID == keyResultID {
			o.KeyResults[i].Completed = !o.KeyResults[i].Completed
			o.CompletedCount = o.CountCompleted()
			r.persist(ctx)
			return
		}
	}
}

// Load replaces the in-memory list with the stored snapshot. Missing
// or corrupt data yields an empty list; neither is surfaced as an
// error. Every completed cache is recounted from the key results and
// a missing created date is back-filled to today, repairing records
// written by older builds.
func (r *Repository) Load(ctx context.Context) {
	objectives, ok, err := r.store.ReadSnapshot(ctx)
	if err != nil {
		r.logger.Warn("failed to load snapshot, starting empty", zap.Error(err))
		r.objectives = []model.Objective{}
		return
	}
	if !ok {
		r.objectives = []model.Objective{}
		return
	}

	today := r.Today()
	for i := range objectives {
		if objectives[i].KeyResults == nil {
			objectives[i].KeyResults = []model.KeyResult{}
		}
		objectives[i].CompletedCount = objectives[i].CountCompleted()
		if objectives[i].CreatedDate.IsZero() {
			objectives[i].CreatedDate = today
		}
	}
	r.objectives = objectives
}

// Save writes the current list to the store. A failed write is logged
// and swallowed; the in-memory state remains the source of truth.
func (r *Repository) Save(ctx context.Context) {
	r.persist(ctx)
}

func (r *Repository) persist(ctx context.Context) {
	if err := r.store.WriteSnapshot(ctx, r.objectives); err != nil {
		r.logger.Error("failed to persist objectives", zap.Error(err))
	}
}

// find returns a pointer into the live list, for mutation.
func (r *Repository) find(id string) *model.Objective {
	for i := range r.objectives {
		if r.objectives[i].ID == id {
			return &r.objectives[i]
		}
	}
	return nil
}
