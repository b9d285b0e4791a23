package trend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/okr-dashboard/internal/model"
	"github.com/nhle/okr-dashboard/internal/trend"
)

var today = model.NewDate(2026, time.August, 29)

func fullyDone(created model.Date) model.Objective {
	o := model.Objective{
		ID:          "o-" + created.String(),
		Title:       "done",
		CreatedDate: created,
		KeyResults: []model.KeyResult{
			{ID: "a", Text: "a", Completed: true},
			{ID: "b", Text: "b", Completed: true},
		},
	}
	o.CompletedCount = o.CountCompleted()
	return o
}

func TestWeekly(t *testing.T) {
	t.Run("no objectives yields a flat zero week", func(t *testing.T) {
		assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, trend.Weekly(nil, today))
	})

	t.Run("objective counts only from its creation day onward", func(t *testing.T) {
		o := fullyDone(today.AddDays(-3))

		got := trend.Weekly([]model.Objective{o}, today)
		assert.Equal(t, []int{0, 0, 0, 100, 100, 100, 100}, got)
	})

	t.Run("uses current progress, not a historical snapshot", func(t *testing.T) {
		// Created a week ago but only just completed: every day still
		// reports the current 100%.
		o := fullyDone(today.AddDays(-7))

		got := trend.Weekly([]model.Objective{o}, today)
		assert.Equal(t, []int{100, 100, 100, 100, 100, 100, 100}, got)
	})

	t.Run("averages across objectives existing on each day", func(t *testing.T) {
		done := fullyDone(today.AddDays(-6))

		idle := model.Objective{
			ID:          "idle",
			Title:       "idle",
			CreatedDate: today.AddDays(-1),
			KeyResults:  []model.KeyResult{{ID: "x", Text: "x"}},
		}

		got := trend.Weekly([]model.Objective{done, idle}, today)
		require.Len(t, got, trend.Days)

		// Days -6..-2: only the finished objective exists -> 100.
		// Days -1..0: mean of 100 and 0 -> 50.
		assert.Equal(t, []int{100, 100, 100, 100, 100, 50, 50}, got)
	})

	t.Run("objective with no key results drags the mean to its zero", func(t *testing.T) {
		done := fullyDone(today.AddDays(-6))
		empty := model.Objective{ID: "e", Title: "e", CreatedDate: today.AddDays(-6)}

		got := trend.Weekly([]model.Objective{done, empty}, today)
		assert.Equal(t, []int{50, 50, 50, 50, 50, 50, 50}, got)
	})
}
