package reminders

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/nhle/reminders/internal/model"
	"github.com/nhle/reminders/internal/store"
)

// notificationTitle is the title of every reminder notification.
const notificationTitle = "Reminder"

// Scheduler is the notification platform boundary the service depends on.
type Scheduler interface {
	// Schedule registers a one-shot notification at fireAt and returns an
	// opaque handle, or an empty handle if scheduling was skipped.
	Schedule(fireAt time.Time, title, body string) (string, error)

	// Cancel stops a previously scheduled notification. Best-effort.
	Cancel(handle string)
}

// Event describes a change to the reminder collection, delivered to
// subscribers so every view refreshes from the same shared state.
type Event int

const (
	EventLoaded Event = iota
	EventCreated
	EventCompleted
	EventDeleted
)

// Service holds the reminder collection partitioned into the active and
// completed sequences and keeps the persistence adapter in sync after
// every mutation.
//
// Active reminders are ordered ascending by fire instant; completed
// reminders keep their completion order. The two sequences are disjoint.
// Storage failures never surface to callers: reads degrade to an empty
// collection and writes leave the change in memory only, logged.
type Service struct {
	store store.Store
	sched Scheduler
	clock clock.Clock

	mu        sync.Mutex
	active    []model.Reminder
	completed []model.Reminder
	subs      []chan Event
}

// NewService creates a Service on top of the given persistence adapter and
// notification scheduler. The clock is injectable so tests can control time.
func NewService(st store.Store, sched Scheduler, c clock.Clock) *Service {
	return &Service{
		store: st,
		sched: sched,
		clock: c,
	}
}

// Load reads the persisted collection and partitions it into the active
// and completed sequences. A read failure degrades to an empty collection.
func (s *Service) Load(ctx context.Context) {
	all, err := s.store.LoadReminders(ctx)
	if err != nil {
		log.Printf("loading reminders, starting empty: %v", err)
		all = nil
	}

	s.mu.Lock()
	s.active = s.active[:0]
	s.completed = s.completed[:0]
	for _, r := range all {
		if r.Completed {
			s.completed = append(s.completed, r)
		} else {
			s.active = append(s.active, r)
		}
	}
	s.sortActiveLocked()
	s.mu.Unlock()

	s.publish(EventLoaded)
}

// RestoreSchedules re-registers notifications for active reminders whose
// fire instant is still in the future. In-process timers do not survive a
// restart, so handles persisted by a previous run are stale by now.
// Past-due active reminders are logged and left unscheduled.
func (s *Service) RestoreSchedules(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	changed := false

	for i := range s.active {
		r := &s.active[i]

		fireAt, err := r.FireInstant()
		if err != nil {
			log.Printf("restoring schedules: %v", err)
			continue
		}
		if !fireAt.After(now) {
			log.Printf("reminder %s was due %s, not rescheduling", r.ID, fireAt.Format(time.RFC3339))
			if r.NotificationID != nil {
				r.NotificationID = nil
				changed = true
			}
			continue
		}

		handle, err := s.sched.Schedule(fireAt, notificationTitle, r.Text)
		if err != nil {
			log.Printf("rescheduling reminder %s: %v", r.ID, err)
			continue
		}
		if handle != "" {
			r.NotificationID = &handle
			changed = true
		}
	}

	if changed {
		s.persistLocked(ctx)
	}
}

// Create validates the input, schedules the notification, and inserts the
// new reminder into the active sequence.
//
// The returned error is a *ValidationError, *PastTimeError, or
// *SchedulingError; each aborts the operation with no state mutated and,
// for the first two, without the scheduler ever being invoked. A
// scheduling failure prevents the reminder from being saved at all.
func (s *Service) Create(ctx context.Context, date, timeOfDay, text string) (model.Reminder, error) {
	r := model.Reminder{
		Date: strings.TrimSpace(date),
		Time: strings.TrimSpace(timeOfDay),
		Text: strings.TrimSpace(text),
	}

	if err := r.Validate(); err != nil {
		return model.Reminder{}, &ValidationError{Err: err}
	}

	fireAt, err := r.FireInstant()
	if err != nil {
		return model.Reminder{}, &ValidationError{Err: err}
	}
	if !fireAt.After(s.clock.Now()) {
		return model.Reminder{}, &PastTimeError{At: fireAt}
	}

	r.ID = uuid.New().String()

	handle, err := s.sched.Schedule(fireAt, notificationTitle, r.Text)
	if err != nil {
		return model.Reminder{}, &SchedulingError{Err: err}
	}
	if handle != "" {
		r.NotificationID = &handle
	}

	s.mu.Lock()
	s.active = append(s.active, r)
	s.sortActiveLocked()
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(EventCreated)
	return r, nil
}

// Complete moves the reminder with the given id from the active sequence
// to the end of the completed sequence and cancels its notification if one
// was scheduled. An unknown id is a no-op. The caller is expected to have
// confirmed the action with the user already.
func (s *Service) Complete(ctx context.Context, id string) {
	s.mu.Lock()

	idx := -1
	for i, r := range s.active {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	r := s.active[idx]
	s.active = append(s.active[:idx], s.active[idx+1:]...)

	handle := r.NotificationID
	r.Completed = true
	r.NotificationID = nil
	s.completed = append(s.completed, r)

	s.persistLocked(ctx)
	s.mu.Unlock()

	if handle != nil {
		s.sched.Cancel(*handle)
	}

	s.publish(EventCompleted)
}

// Delete removes the reminder with the given id from the completed
// sequence. Only completed reminders can be deleted; an unknown id is a
// no-op. The notification was already canceled at completion time, or
// never existed, so no cancellation is attempted.
func (s *Service) Delete(ctx context.Context, id string) {
	s.mu.Lock()

	idx := -1
	for i, r := range s.completed {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.completed = append(s.completed[:idx], s.completed[idx+1:]...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(EventDeleted)
}

// Active returns a copy of the active sequence, ordered ascending by fire
// instant.
func (s *Service) Active() []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Reminder(nil), s.active...)
}

// Completed returns a copy of the completed sequence in completion order.
func (s *Service) Completed() []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Reminder(nil), s.completed...)
}

// Counts returns the number of active and completed reminders.
func (s *Service) Counts() (active, completed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active), len(s.completed)
}

// Search returns every reminder whose text contains the query,
// case-insensitively, across both sequences. An empty query always yields
// an empty result: search results are suppressed, not "show all".
func (s *Service) Search(query string) []model.Reminder {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []model.Reminder{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	results := []model.Reminder{}
	for _, r := range s.active {
		if strings.Contains(strings.ToLower(r.Text), query) {
			results = append(results, r)
		}
	}
	for _, r := range s.completed {
		if strings.Contains(strings.ToLower(r.Text), query) {
			results = append(results, r)
		}
	}
	return results
}

// Subscribe registers a listener for collection changes. Events are
// delivered without blocking; a slow subscriber misses intermediate
// events, not state, since views re-read the service on every event.
func (s *Service) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// publish sends an event to every subscriber without blocking.
func (s *Service) publish(ev Event) {
	s.mu.Lock()
	subs := append([]chan Event(nil), s.subs...)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// sortActiveLocked orders the active sequence ascending by fire instant.
// Entries with an unparseable instant sort first so they stay visible.
func (s *Service) sortActiveLocked() {
	sort.SliceStable(s.active, func(i, j int) bool {
		ti, erri := s.active[i].FireInstant()
		tj, errj := s.active[j].FireInstant()
		if erri != nil || errj != nil {
			return erri != nil && errj == nil
		}
		return ti.Before(tj)
	})
}

// persistLocked writes the full union of both sequences. A write failure
// leaves the change visible in memory for this session only, logged.
func (s *Service) persistLocked(ctx context.Context) {
	union := make([]model.Reminder, 0, len(s.active)+len(s.completed))
	union = append(union, s.active...)
	union = append(union, s.completed...)

	if err := s.store.SaveReminders(ctx, union); err != nil {
		log.Printf("saving reminders: %v", err)
	}
}
