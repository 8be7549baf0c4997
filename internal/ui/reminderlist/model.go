package reminderlist

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/reminders/internal/keys"
	"github.com/nhle/reminders/internal/model"
	"github.com/nhle/reminders/internal/reminders"
	"github.com/nhle/reminders/internal/theme"
)

// Model is the reminder list view: the active sequence followed by the
// completed sequence, each under a collapsible section header.
type Model struct {
	svc  *reminders.Service
	keys *keys.KeyMap

	active    []model.Reminder
	completed []model.Reminder

	cursor        int
	showActive    bool
	showCompleted bool
	width         int
	height        int
}

// New creates a new reminder list model. Both sections start expanded.
func New(svc *reminders.Service, k *keys.KeyMap, width, height int) Model {
	return Model{
		svc:           svc,
		keys:          k,
		showActive:    true,
		showCompleted: true,
		width:         width,
		height:        height,
	}
}

// Reload refreshes both sequences from the shared service.
func (m *Model) Reload() {
	m.active = m.svc.Active()
	m.completed = m.svc.Completed()
	m.clampCursor()
}

// ApplyHints expands sections according to one-shot navigation hints.
// A false hint leaves the section's current fold state alone.
func (m *Model) ApplyHints(expandActive, expandCompleted bool) {
	if expandActive {
		m.showActive = true
		m.cursor = 0
	}
	if expandCompleted {
		m.showCompleted = true
		// Move the cursor to the completed section header.
		for i, r := range m.rows() {
			if r.header && r.section == sectionCompleted {
				m.cursor = i
				break
			}
		}
	}
}

// Selected returns the reminder under the cursor, if the cursor is on one.
func (m Model) Selected() (model.Reminder, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) || rows[m.cursor].header {
		return model.Reminder{}, false
	}
	return rows[m.cursor].reminder, true
}

// Update handles messages for the reminder list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Select):
		rows := m.rows()
		if m.cursor < len(rows) && rows[m.cursor].header {
			m.toggleSection(rows[m.cursor].section)
		}

	case key.Matches(keyMsg, m.keys.ToggleActive):
		m.toggleSection(sectionActive)

	case key.Matches(keyMsg, m.keys.ToggleCompleted):
		m.toggleSection(sectionCompleted)
	}

	return m, nil
}

// View renders the sectioned reminder list.
func (m Model) View() string {
	rows := m.rows()
	if len(m.active) == 0 && len(m.completed) == 0 {
		return m.renderEmptyState()
	}

	now := time.Now()
	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		selected := i == m.cursor
		if r.header {
			switch r.section {
			case sectionActive:
				lines = append(lines, renderHeader("Reminders", len(m.active), m.showActive, selected))
			case sectionCompleted:
				lines = append(lines, renderHeader("Completed", len(m.completed), m.showCompleted, selected))
			}
			continue
		}
		lines = append(lines, renderReminder(r.reminder, selected, now))
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.clip(lines)...)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// rows builds the flat list of renderable rows from the current fold state.
func (m Model) rows() []row {
	rows := []row{{header: true, section: sectionActive}}
	if m.showActive {
		for _, r := range m.active {
			rows = append(rows, row{section: sectionActive, reminder: r})
		}
	}
	rows = append(rows, row{header: true, section: sectionCompleted})
	if m.showCompleted {
		for _, r := range m.completed {
			rows = append(rows, row{section: sectionCompleted, reminder: r})
		}
	}
	return rows
}

func (m *Model) toggleSection(s section) {
	switch s {
	case sectionActive:
		m.showActive = !m.showActive
	case sectionCompleted:
		m.showCompleted = !m.showCompleted
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if n := len(m.rows()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// clip windows the rendered lines around the cursor so long lists fit the
// available height.
func (m Model) clip(lines []string) []string {
	if m.height <= 0 || len(lines) <= m.height {
		return lines
	}

	offset := 0
	if m.cursor >= m.height {
		offset = m.cursor - m.height + 1
	}
	return lines[offset : offset+m.height]
}

// renderEmptyState shows guidance text when no reminders exist.
func (m Model) renderEmptyState() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render("No reminders yet.\n\nPress n to create one.")
}
