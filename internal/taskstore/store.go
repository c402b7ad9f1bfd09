// Package taskstore holds the process-wide derived task lists per role
// and the observer registry the presentation layer subscribes through.
package taskstore

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/event-ops/internal/model"
)

// subscription pairs a registered callback with its registration order.
// The id keeps unsubscription exact even when the same logical consumer
// subscribes more than once.
type subscription struct {
	id int
	fn func()
}

// Store is the single source of truth for derived tasks. Per-role lists
// are independent; insertion order is generation order. Safe for
// concurrent use.
type Store struct {
	mu     sync.Mutex
	tasks  map[model.Role][]model.Task
	subs   []subscription
	nextID int
	log    *zap.Logger
}

// New creates an empty Store. A nil logger falls back to a no-op logger.
func New(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		tasks: make(map[model.Role][]model.Task),
		log:   log,
	}
}

// AddTask appends a task to the role's list, assigning an id when the
// task carries none. It does not notify observers and does not dedup;
// callers clear before regenerating to avoid duplicate accumulation.
func (s *Store) AddTask(role model.Role, task model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.Role = role
	s.tasks[role] = append(s.tasks[role], task)
}

// GetTasks returns a copy of the role's current task list. Callers may
// not observe later mutations through the returned slice.
func (s *Store) GetTasks(role model.Role) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.tasks[role]
	out := make([]model.Task, len(list))
	copy(out, list)
	return out
}

// RemoveTask removes one task by id and notifies observers. It reports
// whether a task was removed.
func (s *Store) RemoveTask(role model.Role, id string) bool {
	s.mu.Lock()
	list := s.tasks[role]
	removed := false
	for i, t := range list {
		if t.ID == id {
			s.tasks[role] = append(list[:i:i], list[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.Notify()
	}
	return removed
}

// ClearTasks empties the role's list without notifying observers. This
// is the pre-regeneration reset; the generator's batch notification
// covers the change.
func (s *Store) ClearTasks(role model.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[role] = nil
}

// ClearAllTasks empties the role's list and notifies observers
// immediately. This is the user-facing "dismiss everything" action.
func (s *Store) ClearAllTasks(role model.Role) {
	s.mu.Lock()
	s.tasks[role] = nil
	s.mu.Unlock()

	s.Notify()
}

// Subscribe registers an observer callback and returns a function that
// removes exactly this registration. Subscribing the same callback twice
// yields two registrations, each needing its own unsubscribe.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every registered observer synchronously in registration
// order. A panicking observer is logged and must not prevent delivery to
// the remaining observers.
func (s *Store) Notify() {
	s.mu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		s.invoke(sub)
	}
}

// invoke runs one observer callback with panic isolation.
func (s *Store) invoke(sub subscription) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("task store observer panicked",
				zap.Int("subscription", sub.id),
				zap.Any("panic", r),
			)
		}
	}()
	sub.fn()
}
