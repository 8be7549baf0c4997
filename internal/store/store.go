package store

import (
	"context"

	"github.com/nhle/reminders/internal/model"
)

// Store defines the persistence interface for the reminder collection.
//
// The collection is always read and written in full: there is no
// incremental update primitive. Every mutation overwrites the single
// persisted value, so the last writer wins.
type Store interface {
	// LoadReminders returns the full persisted collection. A missing or
	// malformed value is treated as an empty collection, not an error.
	LoadReminders(ctx context.Context) ([]model.Reminder, error)

	// SaveReminders overwrites the persisted collection with the given
	// reminders.
	SaveReminders(ctx context.Context, reminders []model.Reminder) error

	// Close releases any underlying resources.
	Close() error
}
