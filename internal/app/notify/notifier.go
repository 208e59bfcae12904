// Package notify selects the habits due for a reminder at an instant
// and hands them, grouped per user, to a notification sink. Delivery
// is best-effort: habitd does not guarantee exactly-once.
package notify

import (
	"log"

	"github.com/habitloop/habitd/internal/domain"
)

// Notifier is the transport that delivers reminder batches. The user's
// eventual reply feeds back through the check-in path.
type Notifier interface {
	Notify(userID string, habits []domain.Habit) error
}

// LogNotifier writes reminders to the process log. It stands in for a
// real chat transport during development and in tests.
type LogNotifier struct{}

// Notify logs one line per due habit.
func (LogNotifier) Notify(userID string, habits []domain.Habit) error {
	for _, h := range habits {
		log.Printf("[notify] user=%s habit=%q due for check-in", userID, h.Name)
	}
	return nil
}
