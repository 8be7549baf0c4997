package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/reminders/internal/model"
)

// remindersKey is the fixed key the full reminder collection is stored under.
const remindersKey = "reminders"

// SQLiteStore implements the Store interface using a key-value table in a
// local SQLite database. The reminder collection is serialized as a single
// JSON array under a fixed key.
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

// LoadReminders reads the full reminder collection from the fixed key.
// A missing key yields an empty collection. A malformed value is logged
// and likewise treated as empty; there is no versioning or migration
// scheme for the blob itself.
func (s *SQLiteStore) LoadReminders(ctx context.Context) ([]model.Reminder, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM kv WHERE key = ?", remindersKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Reminder{}, nil
		}
		return nil, fmt.Errorf("reading reminders: %w", err)
	}

	var reminders []model.Reminder
	if err := json.Unmarshal([]byte(value), &reminders); err != nil {
		log.Printf("malformed reminder collection, treating as empty: %v", err)
		return []model.Reminder{}, nil
	}
	if reminders == nil {
		reminders = []model.Reminder{}
	}

	return reminders, nil
}

// SaveReminders overwrites the persisted collection with the given reminders.
func (s *SQLiteStore) SaveReminders(ctx context.Context, reminders []model.Reminder) error {
	if reminders == nil {
		reminders = []model.Reminder{}
	}

	value, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("marshaling reminders: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		remindersKey, string(value), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing reminders: %w", err)
	}

	return nil
}
