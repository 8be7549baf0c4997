package reminderlist

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/reminders/internal/keys"
	"github.com/nhle/reminders/internal/model"
	"github.com/nhle/reminders/internal/reminders"
)

type fakeStore struct {
	data []model.Reminder
}

func (s *fakeStore) LoadReminders(ctx context.Context) ([]model.Reminder, error) {
	return append([]model.Reminder(nil), s.data...), nil
}

func (s *fakeStore) SaveReminders(ctx context.Context, rs []model.Reminder) error {
	s.data = append([]model.Reminder(nil), rs...)
	return nil
}

func (s *fakeStore) Close() error { return nil }

type nopScheduler struct{}

func (nopScheduler) Schedule(time.Time, string, string) (string, error) { return "", nil }
func (nopScheduler) Cancel(string)                                      {}

func newTestModel(t *testing.T) (Model, *reminders.Service) {
	t.Helper()

	mock := clock.NewMock()
	mock.Set(time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local))
	svc := reminders.NewService(&fakeStore{}, nopScheduler{}, mock)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "2025-06-02", "09:00:00", "first"); err != nil {
		t.Fatalf("create: %v", err)
	}
	done, err := svc.Create(ctx, "2025-06-03", "09:00:00", "second")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	svc.Complete(ctx, done.ID)

	m := New(svc, keys.DefaultKeyMap(), 80, 24)
	m.Reload()
	return m, svc
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSelectedSkipsHeaders(t *testing.T) {
	m, _ := newTestModel(t)

	// Cursor starts on the active section header.
	if _, ok := m.Selected(); ok {
		t.Fatal("header row must not yield a selection")
	}

	m, _ = m.Update(keyMsg('j'))
	r, ok := m.Selected()
	if !ok {
		t.Fatal("expected a reminder under the cursor")
	}
	if r.Text != "first" {
		t.Fatalf("selected %q, want first", r.Text)
	}
}

func TestCursorStopsAtEnds(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = m.Update(keyMsg('k'))
	if _, ok := m.Selected(); ok {
		t.Fatal("cursor must not move above the first row")
	}

	// 4 rows total: header, active, header, completed.
	for i := 0; i < 10; i++ {
		m, _ = m.Update(keyMsg('j'))
	}
	r, ok := m.Selected()
	if !ok || r.Text != "second" {
		t.Fatalf("cursor should stop on the last reminder, got %+v ok=%v", r, ok)
	}
}

func TestFoldingHidesSectionRows(t *testing.T) {
	m, _ := newTestModel(t)

	// Fold the active section, then walk down: the next selectable row is
	// in the completed section.
	m, _ = m.Update(keyMsg('1'))
	m, _ = m.Update(keyMsg('j'))
	m, _ = m.Update(keyMsg('j'))
	r, ok := m.Selected()
	if !ok || !r.Completed {
		t.Fatalf("expected completed reminder after folding active, got %+v ok=%v", r, ok)
	}

	// Folding the completed section too leaves only the two headers.
	m, _ = m.Update(keyMsg('2'))
	if _, ok := m.Selected(); ok {
		t.Fatal("no reminder should be selectable with both sections folded")
	}
}

func TestApplyHintsMovesCursorToCompletedHeader(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = m.Update(keyMsg('2')) // fold completed
	m.ApplyHints(false, true)

	rows := m.rows()
	if !rows[m.cursor].header || rows[m.cursor].section != sectionCompleted {
		t.Fatalf("cursor should sit on the completed header, row %d", m.cursor)
	}
	if !m.showCompleted {
		t.Fatal("hint should expand the completed section")
	}
}

func TestReloadReflectsServiceChanges(t *testing.T) {
	m, svc := newTestModel(t)

	if _, err := svc.Create(context.Background(), "2025-06-04", "09:00:00", "third"); err != nil {
		t.Fatalf("create: %v", err)
	}
	m.Reload()

	if len(m.active) != 2 {
		t.Fatalf("expected 2 active reminders after reload, got %d", len(m.active))
	}
}
