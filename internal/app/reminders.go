package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/reminders/internal/reminders"
)

// reminderChangedMsg is sent when the shared service reports a change to
// the reminder collection.
type reminderChangedMsg struct {
	event reminders.Event
}

// createResultMsg carries the outcome of a create operation.
type createResultMsg struct {
	err error
}

// createReminder validates and persists a new reminder through the service.
func (m *Model) createReminder(date, timeOfDay, text string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.Create(context.Background(), date, timeOfDay, text)
		return createResultMsg{err: err}
	}
}

// completeReminder moves a confirmed reminder to the completed sequence.
func (m *Model) completeReminder(id string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		svc.Complete(context.Background(), id)
		return nil
	}
}

// deleteReminder removes a confirmed reminder from the completed sequence.
func (m *Model) deleteReminder(id string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		svc.Delete(context.Background(), id)
		return nil
	}
}

// waitForEvent returns a tea.Cmd that waits for the next change event from
// the shared service. After each event the handler re-issues the command
// to keep listening.
func (m Model) waitForEvent() tea.Cmd {
	ch := m.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return reminderChangedMsg{event: ev}
	}
}
