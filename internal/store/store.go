package store

import (
	"context"
	"errors"

	"github.com/nhle/okr-dashboard/internal/model"
)

// SnapshotKey is the name of the single slot that holds the serialized
// objective list. The value is carried over from the original
// dashboard's storage key so existing exports stay recognizable.
const SnapshotKey = "okr_dashboard_data"

// ErrCorruptSnapshot is returned when a stored payload exists but
// cannot be decoded. Callers treat it as "no data" (the collection
// resets to empty) rather than a fatal condition.
var ErrCorruptSnapshot = errors.New("snapshot payload is not valid JSON")

// Store is the persistence boundary for the objective list. The whole
// list is written on every mutation; there are no partial writes.
type Store interface {
	// ReadSnapshot returns the stored objective list. ok is false when
	// no snapshot has been written yet. A payload that exists but does
	// not decode yields ErrCorruptSnapshot.
	ReadSnapshot(ctx context.Context) (objectives []model.Objective, ok bool, err error)

	// WriteSnapshot replaces the stored objective list wholesale.
	WriteSnapshot(ctx context.Context, objectives []model.Objective) error

	Close() error
}
