package streak

import (
	"errors"
	"fmt"
	"sync"

	"github.com/habitloop/habitd/internal/domain"
	"github.com/habitloop/habitd/internal/infra/metrics"
)

// Store is the per-user record collaborator. Whole-record overwrite —
// no partial updates.
type Store interface {
	Get(userID string) (domain.UserRecord, error)
	Put(userID string, rec domain.UserRecord) error
}

// Service applies check-ins against the record store. Each operation
// loads the full user record, mutates the single habit, and writes the
// whole record back. A per-user lock makes that read-modify-write a
// critical section; the same-day guard in Transition is the remaining
// safety net against duplicate check-ins racing across processes.
type Service struct {
	store Store

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

// NewService creates a check-in service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store, users: make(map[string]*sync.Mutex)}
}

// lockUser acquires the per-user critical section.
func (s *Service) lockUser(userID string) func() {
	s.mu.Lock()
	um, ok := s.users[userID]
	if !ok {
		um = &sync.Mutex{}
		s.users[userID] = um
	}
	s.mu.Unlock()

	um.Lock()
	return um.Unlock
}

// CheckIn records one outcome for a habit and awards any newly crossed
// milestones. Returns the updated habit and the new badge values.
// A repeat check-in on the same day is a no-op returning the stored
// habit unchanged.
func (s *Service) CheckIn(userID, habitID string, today domain.Date, outcome domain.Outcome) (domain.Habit, []int, error) {
	if !outcome.Valid() {
		return domain.Habit{}, nil, domain.Invalid("outcome", "must be completed, dropped, or skipped")
	}

	unlock := s.lockUser(userID)
	defer unlock()

	rec, err := s.store.Get(userID)
	if err != nil {
		return domain.Habit{}, nil, err
	}
	h := rec.FindHabit(habitID)
	if h == nil {
		return domain.Habit{}, nil, domain.ErrHabitNotFound
	}

	if h.CheckedToday(today) {
		metrics.CheckinNoops.Inc()
		return *h, nil, nil
	}

	next := Transition(*h, today, outcome)

	var awarded []int
	if outcome == domain.OutcomeCompleted {
		awarded = Detect(next.Streak, next.Badges)
		if len(awarded) > 0 {
			badges := make([]int, len(next.Badges), len(next.Badges)+len(awarded))
			copy(badges, next.Badges)
			next.Badges = append(badges, awarded...)
		}
	}

	*h = next
	if err := s.store.Put(userID, rec); err != nil {
		return domain.Habit{}, nil, fmt.Errorf("persist check-in: %w", err)
	}

	metrics.CheckinsTotal.WithLabelValues(string(outcome)).Inc()
	if len(awarded) > 0 {
		metrics.BadgesAwarded.Add(float64(len(awarded)))
	}
	return next, awarded, nil
}

// Skip defers today's period without breaking the streak. Convenience
// for notification replies.
func (s *Service) Skip(userID, habitID string, today domain.Date) (domain.Habit, error) {
	h, _, err := s.CheckIn(userID, habitID, today, domain.OutcomeSkipped)
	return h, err
}

// Update runs fn against the user's record inside the per-user critical
// section and writes the whole record back. An unknown user starts from
// an empty record, so the write path can create users implicitly. An
// error from fn aborts the write and leaves the stored record unchanged.
func (s *Service) Update(userID string, fn func(*domain.UserRecord) error) error {
	unlock := s.lockUser(userID)
	defer unlock()

	rec, err := s.store.Get(userID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if err := fn(&rec); err != nil {
		return err
	}
	return s.store.Put(userID, rec)
}
