package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier delivers a notification to the user through the host platform.
type Notifier interface {
	// Notify shows a notification with the given title and body.
	Notify(title, body string) error

	// Ping reports whether the platform is able to deliver notifications.
	// A non-nil result means notifications will be silently dropped.
	Ping() error
}

// DesktopNotifier delivers notifications through the operating system's
// desktop notification facility.
type DesktopNotifier struct {
	// Sound controls whether delivered notifications play the system
	// alert sound.
	Sound bool
}

// NewDesktopNotifier creates a DesktopNotifier.
func NewDesktopNotifier(sound bool) *DesktopNotifier {
	return &DesktopNotifier{Sound: sound}
}

// Notify shows a desktop notification.
func (n *DesktopNotifier) Notify(title, body string) error {
	var err error
	if n.Sound {
		err = beeep.Alert(title, body, "")
	} else {
		err = beeep.Notify(title, body, "")
	}
	if err != nil {
		return fmt.Errorf("delivering desktop notification: %w", err)
	}
	return nil
}

// Ping reports delivery readiness. Desktop notification stacks require no
// runtime permission grant, so this always succeeds; an unavailable
// notification daemon surfaces later as a delivery error, which is logged.
func (n *DesktopNotifier) Ping() error {
	return nil
}
