package reminderlist

import (
	"fmt"
	"time"

	"github.com/nhle/reminders/internal/model"
	"github.com/nhle/reminders/internal/theme"
)

// section identifies which partition a row belongs to.
type section int

const (
	sectionActive section = iota
	sectionCompleted
)

// row is a single renderable line: either a section header or a reminder.
type row struct {
	header   bool
	section  section
	reminder model.Reminder
}

// renderHeader draws a section title with its fold marker and count.
func renderHeader(title string, count int, expanded, selected bool) string {
	marker := "▸"
	if expanded {
		marker = "▾"
	}
	line := fmt.Sprintf("%s %s (%d)", marker, title, count)
	if selected {
		return theme.SelectedItemStyle.Render(theme.SectionHeaderStyle.Render(line))
	}
	return theme.SectionHeaderStyle.Render(line)
}

// renderReminder draws a single reminder line.
func renderReminder(r model.Reminder, selected bool, now time.Time) string {
	prefix := "○"
	if r.Completed {
		prefix = "✓"
	}
	line := prefix + " " + r.Label()

	switch {
	case selected:
		return theme.SelectedItemStyle.Render(line)
	case r.Completed:
		return theme.CompletedItemStyle.Render(line)
	default:
		if fireAt, err := r.FireInstant(); err == nil && fireAt.Before(now) {
			return theme.ListItemStyle.Render(theme.OverdueStyle.Render(line))
		}
		return theme.ListItemStyle.Render(line)
	}
}
