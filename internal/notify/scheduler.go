package notify

import (
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

// Scheduler registers one-shot local notifications to be delivered at a
// future instant and cancels them by handle.
//
// Scheduling and cancellation are best-effort side channels: a failure to
// deliver or cancel a notification is logged and never propagated, so it
// cannot corrupt the reminder data the notification was created for.
type Scheduler struct {
	clock    clock.Clock
	notifier Notifier

	mu     sync.Mutex
	timers map[string]*clock.Timer

	permOnce sync.Once
}

// NewScheduler creates a Scheduler delivering through the given notifier.
// The clock is injectable so tests can control time.
func NewScheduler(notifier Notifier, c clock.Clock) *Scheduler {
	return &Scheduler{
		clock:    c,
		notifier: notifier,
		timers:   make(map[string]*clock.Timer),
	}
}

// EnsurePermission probes the notification platform once. The outcome is
// logged only; scheduling proceeds regardless and the platform silently
// drops notifications it cannot deliver.
func (s *Scheduler) EnsurePermission() {
	s.permOnce.Do(func() {
		if err := s.notifier.Ping(); err != nil {
			log.Printf("notification platform unavailable, notifications may be dropped: %v", err)
		}
	})
}

// Schedule registers a one-shot notification at the exact fire instant and
// returns an opaque handle for later cancellation. If fireAt is not in the
// future it logs a warning and returns an empty handle with no error.
func (s *Scheduler) Schedule(fireAt time.Time, title, body string) (string, error) {
	delay := fireAt.Sub(s.clock.Now())
	if delay <= 0 {
		log.Printf("fire instant %s is in the past, not scheduling", fireAt.Format(time.RFC3339))
		return "", nil
	}

	handle := uuid.New().String()

	s.mu.Lock()
	s.timers[handle] = s.clock.AfterFunc(delay, func() {
		s.fire(handle, title, body)
	})
	s.mu.Unlock()

	return handle, nil
}

// Cancel stops the notification registered under handle. Cancellation is
// best-effort: an unknown or already-fired handle is logged and ignored.
func (s *Scheduler) Cancel(handle string) {
	if handle == "" {
		return
	}

	s.mu.Lock()
	timer, ok := s.timers[handle]
	if ok {
		delete(s.timers, handle)
	}
	s.mu.Unlock()

	if !ok {
		log.Printf("cancel: no scheduled notification for handle %s", handle)
		return
	}
	timer.Stop()
}

// Pending returns the number of notifications currently scheduled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels all outstanding notifications. Used on shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for handle, timer := range s.timers {
		timer.Stop()
		delete(s.timers, handle)
	}
}

// NopScheduler is used when notifications are disabled in configuration.
// Every schedule call is skipped and returns an empty handle.
type NopScheduler struct{}

func (NopScheduler) Schedule(time.Time, string, string) (string, error) { return "", nil }

func (NopScheduler) Cancel(string) {}

// fire delivers a due notification and forgets its handle.
func (s *Scheduler) fire(handle, title, body string) {
	s.mu.Lock()
	delete(s.timers, handle)
	s.mu.Unlock()

	if err := s.notifier.Notify(title, body); err != nil {
		log.Printf("delivering notification %s: %v", handle, err)
	}
}
