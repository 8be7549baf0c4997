package reminderform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/reminders/internal/model"
	"github.com/nhle/reminders/internal/theme"
)

// ReminderSubmittedMsg is dispatched when the user submits the form.
type ReminderSubmittedMsg struct {
	Date string
	Time string
	Text string
}

// ReminderFormCancelMsg is dispatched when the user cancels the form.
type ReminderFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	date string
	time string
	text string
}

// Model is the Bubble Tea model for the reminder creation form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new reminder form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form, keeping any previously entered values so a
// rejected submission can be corrected rather than retyped.
func (m *Model) Start() tea.Cmd {
	m.form = m.buildForm()
	return m.form.Init()
}

// Clear resets all field values for a fresh reminder.
func (m *Model) Clear() {
	m.fb.date = ""
	m.fb.time = ""
	m.fb.text = ""
}

// Update handles messages for the reminder form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return ReminderFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the reminder form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Reminder") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Time").
				Placeholder("HH:MM:SS").
				Value(&m.fb.time).
				Validate(validateTime),
			huh.NewInput().
				Title("Reminder Text").
				Placeholder("What should I remind you about?").
				Value(&m.fb.text).
				Validate(validateRequired("Text")),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	date := strings.TrimSpace(m.fb.date)
	timeOfDay := strings.TrimSpace(m.fb.time)
	text := strings.TrimSpace(m.fb.text)
	return func() tea.Msg {
		return ReminderSubmittedMsg{Date: date, Time: timeOfDay, Text: text}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return fmt.Errorf("invalid date, use YYYY-MM-DD")
	}
	return nil
}

func validateTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("time is required")
	}
	if _, err := time.Parse(model.TimeLayout, s); err != nil {
		return fmt.Errorf("invalid time, use HH:MM:SS")
	}
	return nil
}
