package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ResultMsg is dispatched when the user answers the confirmation prompt.
// No state is mutated anywhere until a ResultMsg with Accepted=true is
// processed.
type ResultMsg struct {
	Accepted bool
}

// Model is a modal yes/no confirmation dialog.
type Model struct {
	form     *huh.Form
	accepted *bool
	width    int
	height   int
}

// New creates a new confirmation dialog model.
func New(width, height int) Model {
	return Model{
		accepted: new(bool),
		width:    width,
		height:   height,
	}
}

// Start initializes the dialog with the given prompt and button label.
func (m *Model) Start(prompt, affirmative string) tea.Cmd {
	*m.accepted = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative(affirmative).
				Negative("Cancel").
				Value(m.accepted),
		),
	).WithWidth(m.dialogWidth())
	return m.form.Init()
}

// Update handles messages for the confirmation dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		accepted := *m.accepted
		return m, func() tea.Msg { return ResultMsg{Accepted: accepted} }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return ResultMsg{Accepted: false} }
	}

	return m, cmd
}

// View renders the confirmation dialog.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(m.form.View())
}

// SetSize updates the dialog dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) dialogWidth() int {
	w := m.width - 8
	if w < 30 {
		w = 30
	}
	if w > 60 {
		w = 60
	}
	return w
}
