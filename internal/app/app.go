package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/reminders/internal/keys"
	"github.com/nhle/reminders/internal/reminders"
	"github.com/nhle/reminders/internal/ui"
	"github.com/nhle/reminders/internal/ui/confirm"
	"github.com/nhle/reminders/internal/ui/dashboard"
	helpview "github.com/nhle/reminders/internal/ui/help"
	"github.com/nhle/reminders/internal/ui/reminderform"
	"github.com/nhle/reminders/internal/ui/reminderlist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDashboard
	ViewCreate
	ViewConfirm
	ViewHelp
)

// pendingAction records the mutation a confirmation dialog is gating.
type pendingAction struct {
	deleteCompleted bool
	id              string
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the shared reminder service.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	svc          *reminders.Service
	keys         *keys.KeyMap
	events       <-chan reminders.Event

	listView  reminderlist.Model
	dashView  dashboard.Model
	formView  reminderform.Model
	confirmer confirm.Model
	helpView  helpview.Model

	pending *pendingAction
	alert   string
	ready   bool
}

// New creates the root application model on top of an already-loaded
// reminder service.
func New(svc *reminders.Service) Model {
	k := keys.DefaultKeyMap()

	m := Model{
		currentView: ViewList,
		svc:         svc,
		keys:        k,
		events:      svc.Subscribe(),
		listView:    reminderlist.New(svc, k, 80, 24),
		dashView:    dashboard.New(svc, k, 80, 24),
		formView:    reminderform.New(80, 24),
		confirmer:   confirm.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
	}
	m.listView.Reload()
	m.dashView.Reload()
	return m
}

// Init subscribes to change events from the shared service.
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.listView.SetSize(contentWidth, contentHeight)
		m.dashView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.confirmer.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case reminderChangedMsg:
		// The shared service changed; refresh both views from it.
		m.listView.Reload()
		m.dashView.Reload()
		return m, m.waitForEvent()

	case createResultMsg:
		if msg.err != nil {
			// Validation, past-time, and scheduling failures are the only
			// errors shown to the user. The form keeps its values for a
			// retry.
			m.alert = msg.err.Error()
			m.currentView = ViewCreate
			return m, m.formView.Start()
		}
		m.alert = ""
		m.currentView = ViewList
		return m, nil

	case reminderform.ReminderSubmittedMsg:
		return m, m.createReminder(msg.Date, msg.Time, msg.Text)

	case reminderform.ReminderFormCancelMsg:
		m.alert = ""
		m.currentView = ViewList
		return m, nil

	case dashboard.OpenListMsg:
		m.currentView = ViewList
		m.listView.ApplyHints(msg.ExpandActive, msg.ExpandCompleted)
		return m, nil

	case confirm.ResultMsg:
		pending := m.pending
		m.pending = nil
		m.currentView = ViewList
		if !msg.Accepted || pending == nil {
			return m, nil
		}
		if pending.deleteCompleted {
			return m, m.deleteReminder(pending.id)
		}
		return m, m.completeReminder(pending.id)

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that switch views or start gated actions.
// It reports false when the key should be delegated to the active view.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}

	// Text-entry views own their keystrokes.
	if m.currentView == ViewCreate || m.currentView == ViewConfirm {
		return nil, false
	}
	if m.currentView == ViewDashboard && m.dashView.Searching() {
		return nil, false
	}

	switch msg.String() {
	case "q":
		return tea.Quit, true

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
		} else {
			m.previousView = m.currentView
			m.currentView = ViewHelp
		}
		return nil, true

	case "esc":
		if m.currentView == ViewHelp || m.currentView == ViewDashboard {
			m.currentView = ViewList
			return nil, true
		}

	case "tab":
		if m.currentView == ViewList {
			m.currentView = ViewDashboard
			m.dashView.Reload()
		} else if m.currentView == ViewDashboard {
			m.currentView = ViewList
		}
		m.alert = ""
		return nil, true

	case "n":
		if m.currentView == ViewList {
			m.alert = ""
			m.formView.Clear()
			m.currentView = ViewCreate
			return m.formView.Start(), true
		}

	case "x":
		if m.currentView == ViewList {
			r, ok := m.listView.Selected()
			if ok && !r.Completed {
				m.alert = ""
				m.pending = &pendingAction{id: r.ID}
				m.currentView = ViewConfirm
				return m.confirmer.Start("Want to mark this as Complete?", "Yes"), true
			}
		}

	case "d":
		if m.currentView == ViewList {
			r, ok := m.listView.Selected()
			if ok && r.Completed {
				m.alert = ""
				m.pending = &pendingAction{deleteCompleted: true, id: r.ID}
				m.currentView = ViewConfirm
				return m.confirmer.Start("Are you sure you want to delete this reminder?", "Delete"), true
			}
		}
	}

	return nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.listView, cmd = m.listView.Update(msg)
	case ViewDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case ViewCreate:
		m.formView, cmd = m.formView.Update(msg)
	case ViewConfirm:
		m.confirmer, cmd = m.confirmer.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	active, completed := m.svc.Counts()
	summary := fmt.Sprintf("%d active · %d done", active, completed)

	var title string
	var content string
	switch m.currentView {
	case ViewList:
		title = "Reminders"
		content = m.listView.View()
	case ViewDashboard:
		title = "Dashboard"
		content = m.dashView.View()
	case ViewCreate:
		title = "New Reminder"
		content = m.formView.View()
	case ViewConfirm:
		title = "Confirm"
		content = m.confirmer.View()
	case ViewHelp:
		title = "Help"
		content = m.helpView.View()
	}

	if m.alert != "" {
		content = m.layout.RenderAlert(m.alert) + "\n" + content
	}

	return m.layout.RenderWithFrame(
		m.layout.RenderHeader(title, summary),
		content,
		m.layout.RenderStatusBar(m.statusHints()),
	)
}

// statusHints returns the keyboard hint line for the current view.
func (m Model) statusHints() string {
	switch m.currentView {
	case ViewList:
		return "n new · x complete · d delete · enter fold · tab dashboard · ? help · q quit"
	case ViewDashboard:
		return "/ search · enter open section · tab list · q quit"
	case ViewCreate:
		return "enter next field · esc cancel"
	case ViewConfirm:
		return "←/→ choose · enter confirm"
	case ViewHelp:
		return "? or esc to close"
	}
	return ""
}
