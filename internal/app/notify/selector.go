package notify

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/habitloop/habitd/internal/app/schedule"
	"github.com/habitloop/habitd/internal/domain"
	"github.com/habitloop/habitd/internal/infra/metrics"
)

// Store is the read side of the per-user record store.
type Store interface {
	ListUserIDs() ([]string, error)
	Get(userID string) (domain.UserRecord, error)
}

// Batch groups the habits due for one user, for batched delivery.
type Batch struct {
	UserID string         `json:"user_id"`
	Habits []domain.Habit `json:"habits"`
}

// Selector walks every user's habits and collects those due at an
// instant. Users are evaluated in parallel — each user's evaluation is
// independent and side-effect-free until delivery.
type Selector struct {
	store   Store
	eval    *schedule.Evaluator
	workers int
}

// NewSelector creates a selector with a bounded worker pool.
func NewSelector(store Store, eval *schedule.Evaluator, workers int) *Selector {
	if workers <= 0 {
		workers = 4
	}
	return &Selector{store: store, eval: eval, workers: workers}
}

// SelectDue evaluates all users at the given instant and returns the
// due habits grouped by user, ordered by user id. A persistence or
// evaluation failure for one user is logged and counted, never fatal
// for the remaining users.
func (s *Selector) SelectDue(at time.Time) ([]Batch, error) {
	ids, err := s.store.ListUserIDs()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var (
		mu      sync.Mutex
		batches []Batch
		wg      sync.WaitGroup
		sem     = make(chan struct{}, s.workers)
	)
	for _, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(userID string) {
			defer wg.Done()
			defer func() { <-sem }()

			batch, err := s.dueForUser(userID, at)
			if err != nil {
				metrics.DueEvalErrors.Inc()
				log.Printf("[notify] evaluate user %s: %v", userID, err)
				return
			}
			if len(batch.Habits) == 0 {
				return
			}
			mu.Lock()
			batches = append(batches, batch)
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	sort.Slice(batches, func(i, j int) bool { return batches[i].UserID < batches[j].UserID })
	return batches, nil
}

// dueForUser evaluates one user's habits at the instant, in the user's
// own zone (default UTC). Habits already checked today in that zone are
// excluded regardless of schedule.
func (s *Selector) dueForUser(userID string, at time.Time) (Batch, error) {
	rec, err := s.store.Get(userID)
	if err != nil {
		return Batch{}, err
	}

	batch := Batch{UserID: userID}
	if rec.Preferences.Blocked {
		return batch, nil
	}

	tz := rec.Preferences.Timezone
	if tz == "" {
		tz = "UTC"
	}
	today := s.eval.LocalDate(at, tz)

	for _, h := range rec.Habits {
		if !h.Active() || h.CheckedToday(today) {
			continue
		}
		if s.eval.IsDue(h, at, tz) {
			batch.Habits = append(batch.Habits, h)
		}
	}
	if n := len(batch.Habits); n > 0 {
		metrics.DueHabits.Add(float64(n))
	}
	return batch, nil
}
