package dashboard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/reminders/internal/keys"
	"github.com/nhle/reminders/internal/model"
	"github.com/nhle/reminders/internal/reminders"
	"github.com/nhle/reminders/internal/theme"
)

// OpenListMsg asks the application to navigate to the reminder list,
// optionally expanding one of its sections. The hints are one-shot and
// never persisted.
type OpenListMsg struct {
	ExpandActive    bool
	ExpandCompleted bool
}

// Model is the dashboard view: active/completed counts plus a live text
// search over the full collection.
type Model struct {
	svc  *reminders.Service
	keys *keys.KeyMap

	activeCount    int
	completedCount int
	results        []model.Reminder

	cursor      int
	searchMode  bool
	searchInput textinput.Model

	width  int
	height int
}

// New creates a new dashboard model.
func New(svc *reminders.Service, k *keys.KeyMap, width, height int) Model {
	si := textinput.New()
	si.Placeholder = "search reminders..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		svc:         svc,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Reload refreshes counts and re-runs the current search from the shared
// service.
func (m *Model) Reload() {
	m.activeCount, m.completedCount = m.svc.Counts()
	m.results = m.svc.Search(m.searchInput.Value())
}

// Update handles messages for the dashboard view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searchMode {
		return m.handleSearchKeys(keyMsg)
	}
	return m.handleNormalKeys(keyMsg)
}

// handleSearchKeys processes key input while the search field is focused.
// The result list is recomputed on every keystroke.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.results = m.svc.Search("")
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.results = m.svc.Search(m.searchInput.Value())
	return m, cmd
}

// handleNormalKeys processes key input outside of search mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < 1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Select):
		if m.cursor == 0 {
			return m, func() tea.Msg { return OpenListMsg{ExpandActive: true} }
		}
		return m, func() tea.Msg { return OpenListMsg{ExpandCompleted: true} }

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		return m, m.searchInput.Focus()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	countLine := func(label string, count, idx int) string {
		line := fmt.Sprintf("%s %s", label, theme.CountStyle.Render(fmt.Sprintf("%d", count)))
		if m.cursor == idx && !m.searchMode {
			return theme.SelectedItemStyle.Render(line)
		}
		return theme.ListItemStyle.Render(line)
	}

	sections := []string{
		theme.SectionHeaderStyle.Render("Overview"),
		countLine("Active reminders:", m.activeCount, 0),
		countLine("Completed reminders:", m.completedCount, 1),
		"",
		theme.SectionHeaderStyle.Render("Search"),
		lipgloss.NewStyle().Padding(0, 1).Render(m.searchInput.View()),
	}

	if m.searchInput.Value() != "" {
		if len(m.results) == 0 {
			sections = append(sections, theme.HelpStyle.Render("  no matches"))
		}
		for _, r := range m.results {
			prefix := "○"
			if r.Completed {
				prefix = "✓"
			}
			sections = append(sections, theme.ListItemStyle.Render(prefix+" "+r.Label()))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Searching reports whether the search field currently has focus, so the
// application does not intercept its keystrokes.
func (m Model) Searching() bool {
	return m.searchMode
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = width - 4
}
