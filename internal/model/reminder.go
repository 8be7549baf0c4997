package model

import (
	"fmt"
	"strings"
	"time"
)

// Date and time layouts used for reminder fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Reminder is a single dated reminder created and managed by the user.
type Reminder struct {
	// ID is the locally unique identifier, assigned at creation.
	ID string `json:"id"`

	// Date is the calendar date component as an ISO YYYY-MM-DD string.
	Date string `json:"date"`

	// Time is the time-of-day component as an ISO HH:MM:SS string.
	Time string `json:"time"`

	// Text is the user-supplied reminder label.
	Text string `json:"text"`

	// Completed is set to true exactly once when the user marks the
	// reminder done. It is never reset.
	Completed bool `json:"completed"`

	// NotificationID is the handle of the scheduled local notification,
	// if one was registered when the reminder was created.
	NotificationID *string `json:"notificationId,omitempty"`
}

// Validate checks that all required fields are present and that the
// date and time components are well-formed.
func (r Reminder) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return fmt.Errorf("date is required")
	}
	if strings.TrimSpace(r.Time) == "" {
		return fmt.Errorf("time is required")
	}
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if _, err := time.ParseInLocation(DateLayout, r.Date, time.Local); err != nil {
		return fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	if _, err := time.ParseInLocation(TimeLayout, r.Time, time.Local); err != nil {
		return fmt.Errorf("invalid time %q: %w", r.Time, err)
	}
	return nil
}

// FireInstant returns the combined date+time at which the reminder's
// notification is due, interpreted in the local time zone.
func (r Reminder) FireInstant() (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+"T"+TimeLayout, r.Date+"T"+r.Time, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing fire instant for reminder %s: %w", r.ID, err)
	}
	return t, nil
}

// Label returns the single-line list representation of the reminder.
func (r Reminder) Label() string {
	return r.Date + " " + r.Time + " - " + r.Text
}
