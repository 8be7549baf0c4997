package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/nhle/reminders/internal/model"
)

func TestLoadRemindersEmptyDatabase(t *testing.T) {
	s := newTestStore(t)

	reminders, err := s.LoadReminders(context.Background())
	if err != nil {
		t.Fatalf("load reminders: %v", err)
	}
	if len(reminders) != 0 {
		t.Fatalf("expected empty collection, got %d reminders", len(reminders))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	handle := "handle-1"
	original := []model.Reminder{
		{ID: "a", Date: "2030-01-01", Time: "09:00:00", Text: "Pay rent", NotificationID: &handle},
		{ID: "b", Date: "2030-02-01", Time: "10:30:00", Text: "Dentist", Completed: true},
	}

	if err := s.SaveReminders(ctx, original); err != nil {
		t.Fatalf("save reminders: %v", err)
	}

	loaded, err := s.LoadReminders(ctx)
	if err != nil {
		t.Fatalf("load reminders: %v", err)
	}
	if !reflect.DeepEqual(original, loaded) {
		t.Fatalf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", original, loaded)
	}

	// Persisting a freshly loaded collection must be idempotent.
	if err := s.SaveReminders(ctx, loaded); err != nil {
		t.Fatalf("re-save reminders: %v", err)
	}
	reloaded, err := s.LoadReminders(ctx)
	if err != nil {
		t.Fatalf("reload reminders: %v", err)
	}
	if !reflect.DeepEqual(loaded, reloaded) {
		t.Fatalf("save(load()) not idempotent:\nfirst:  %+v\nsecond: %+v", loaded, reloaded)
	}
}

func TestSaveOverwritesFullCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := []model.Reminder{
		{ID: "a", Date: "2030-01-01", Time: "09:00:00", Text: "One"},
		{ID: "b", Date: "2030-01-02", Time: "09:00:00", Text: "Two"},
	}
	if err := s.SaveReminders(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	second := []model.Reminder{
		{ID: "b", Date: "2030-01-02", Time: "09:00:00", Text: "Two"},
	}
	if err := s.SaveReminders(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	loaded, err := s.LoadReminders(ctx)
	if err != nil {
		t.Fatalf("load reminders: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "b" {
		t.Fatalf("expected only reminder b after overwrite, got %+v", loaded)
	}
}

func TestLoadRemindersMalformedValueTreatedAsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?)", remindersKey, "{not json",
	); err != nil {
		t.Fatalf("inserting malformed value: %v", err)
	}

	reminders, err := s.LoadReminders(ctx)
	if err != nil {
		t.Fatalf("load reminders: %v", err)
	}
	if len(reminders) != 0 {
		t.Fatalf("expected malformed value to degrade to empty, got %d reminders", len(reminders))
	}
}

func TestSaveNilCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveReminders(ctx, nil); err != nil {
		t.Fatalf("save nil: %v", err)
	}
	loaded, err := s.LoadReminders(ctx)
	if err != nil {
		t.Fatalf("load reminders: %v", err)
	}
	if loaded == nil || len(loaded) != 0 {
		t.Fatalf("expected empty non-nil collection, got %#v", loaded)
	}
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}
