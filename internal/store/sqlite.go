package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/okr-dashboard/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite
// database with a single snapshot row.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ReadSnapshot loads and decodes the snapshot row, if any.
func (s *SQLiteStore) ReadSnapshot(ctx context.Context) ([]model.Objective, bool, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload,
		"SELECT payload FROM snapshots WHERE key = ?", SnapshotKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading snapshot %s: %w", SnapshotKey, err)
	}

	var objectives []model.Objective
	if err := json.Unmarshal([]byte(payload), &objectives); err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	return objectives, true, nil
}

// WriteSnapshot serializes the objective list and replaces the
// snapshot row wholesale.
func (s *SQLiteStore) WriteSnapshot(ctx context.Context, objectives []model.Objective) error {
	if objectives == nil {
		objectives = []model.Objective{}
	}

	payload, err := json.Marshal(objectives)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO snapshots (key, payload, updated_at)
		VALUES (?, ?, ?)`,
		SnapshotKey, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing snapshot %s: %w", SnapshotKey, err)
	}

	return nil
}
