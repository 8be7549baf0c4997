package reminders

import (
	"fmt"
	"time"
)

// ValidationError reports a missing or malformed reminder field.
// It is one of the three errors surfaced to the user directly.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid reminder: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// PastTimeError reports a fire instant that is not in the future.
// No notification can be scheduled for it, so creation is rejected.
type PastTimeError struct {
	At time.Time
}

func (e *PastTimeError) Error() string {
	return fmt.Sprintf("reminder time %s is in the past", e.At.Format("2006-01-02 15:04:05"))
}

// SchedulingError reports a failure registering the notification with the
// platform. Creation is rejected so no reminder exists without its
// notification.
type SchedulingError struct {
	Err error
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("scheduling notification: %v", e.Err)
}

func (e *SchedulingError) Unwrap() error { return e.Err }
