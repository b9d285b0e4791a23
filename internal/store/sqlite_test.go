package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/okr-dashboard/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

func sampleObjectives() []model.Objective {
	deadline := model.NewDate(2026, time.September, 30)
	return []model.Objective{
		{
			ID:          "obj-1",
			Title:       "Ship the dashboard",
			CreatedDate: model.NewDate(2026, time.August, 20),
			Deadline:    &deadline,
			KeyResults: []model.KeyResult{
				{ID: "kr-1", Text: "Write docs", Completed: true},
				{ID: "kr-2", Text: "Fix bugs"},
			},
			CompletedCount: 1,
		},
		{
			ID:          "obj-2",
			Title:       "No deadline, no key results",
			CreatedDate: model.NewDate(2026, time.August, 25),
			KeyResults:  []model.KeyResult{},
		},
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	want := sampleObjectives()
	require.NoError(t, s.WriteSnapshot(ctx, want))

	got, ok, err := s.ReadSnapshot(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSQLiteStoreMissingSnapshot(t *testing.T) {
	s := newTestSQLiteStore(t)

	got, ok, err := s.ReadSnapshot(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSQLiteStoreWholeListReplace(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteSnapshot(ctx, sampleObjectives()))
	require.NoError(t, s.WriteSnapshot(ctx, []model.Objective{
		{ID: "only", Title: "Only one left", CreatedDate: model.NewDate(2026, time.August, 29), KeyResults: []model.KeyResult{}},
	}))

	got, ok, err := s.ReadSnapshot(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "only", got[0].ID)

	var rows int
	require.NoError(t, s.db.Get(&rows, "SELECT COUNT(*) FROM snapshots"))
	assert.Equal(t, 1, rows, "writes replace the single slot, they never accumulate rows")
}

func TestSQLiteStoreNilListWritesEmptyArray(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteSnapshot(ctx, nil))

	var payload string
	require.NoError(t, s.db.Get(&payload, "SELECT payload FROM snapshots WHERE key = ?", SnapshotKey))
	assert.Equal(t, "[]", payload)

	got, ok, err := s.ReadSnapshot(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestSQLiteStoreCorruptPayload(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)",
		SnapshotKey, "{not json", time.Now().UTC(),
	)
	require.NoError(t, err)

	_, ok, err := s.ReadSnapshot(ctx)
	assert.True(t, ok, "the slot exists even though its payload is unreadable")
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestSQLiteStoreLegacyPayload(t *testing.T) {
	// A payload written by the original widget: completedCount is
	// stale and createdDate is absent on the second objective. The
	// store hands it back as-is; repair happens in the repository.
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	payload := `[
		{"id":"a","title":"Legacy","createdDate":"2026-08-01","deadline":null,
		 "keyResults":[{"id":"k","text":"done","completed":true}],"completedCount":0},
		{"id":"b","title":"Older still","deadline":"2026-12-31","keyResults":[],"completedCount":0}
	]`
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)",
		SnapshotKey, payload, time.Now().UTC(),
	)
	require.NoError(t, err)

	got, ok, err := s.ReadSnapshot(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)

	assert.Equal(t, 0, got[0].CompletedCount, "stored cache passes through untouched")
	assert.True(t, got[1].CreatedDate.IsZero(), "missing createdDate decodes to the zero date")
	assert.Equal(t, "2026-12-31", got[1].Deadline.String())
}
