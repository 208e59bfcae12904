// Package streak implements the habit streak state machine and the
// milestone detector. Transitions are pure value transformations; the
// Service wraps them in a per-user read-modify-write against the
// record store.
package streak

import (
	"github.com/habitloop/habitd/internal/domain"
)

// Transition applies one check-in outcome to a habit for the given day
// and returns the next habit state. The input value is never mutated.
//
// At most one transition per habit per calendar day: a repeat check-in
// on the same day returns the habit unchanged, whatever the outcome.
func Transition(h domain.Habit, today domain.Date, outcome domain.Outcome) domain.Habit {
	if h.CheckedToday(today) {
		return h
	}

	switch outcome {
	case domain.OutcomeCompleted:
		switch {
		case h.LastChecked.IsZero():
			// First-ever check.
			h.Streak = 1
		case h.LastChecked == today.AddDays(-1):
			h.Streak++
		default:
			// Gap of ≥2 days: the streak restarts silently. No dropped
			// entry is recorded — only an explicit drop leaves one.
			h.Streak = 1
		}
		if !h.IsDaily() {
			h.Checked = appendDate(h.Checked, today)
		}
		if h.Streak > h.BestStreak {
			h.BestStreak = h.Streak
		}

	case domain.OutcomeDropped:
		h.Dropped = appendDrop(h.Dropped, domain.DropEntry{Streak: h.Streak, Date: today})
		h.Streak = 0
		// Skip history resets along with the streak.
		h.Skipped = nil

	case domain.OutcomeSkipped:
		h.Skipped = appendSkip(h.Skipped, domain.SkipEntry{Streak: h.Streak, Date: today})

	default:
		return h
	}

	h.LastChecked = today
	return h
}

// The append helpers copy before appending so the caller's habit value
// stays untouched (the lists are append-only but shared by value).

func appendDate(list []domain.Date, d domain.Date) []domain.Date {
	if n := len(list); n > 0 && list[n-1] == d {
		return list
	}
	out := make([]domain.Date, len(list), len(list)+1)
	copy(out, list)
	return append(out, d)
}

func appendSkip(list []domain.SkipEntry, e domain.SkipEntry) []domain.SkipEntry {
	out := make([]domain.SkipEntry, len(list), len(list)+1)
	copy(out, list)
	return append(out, e)
}

func appendDrop(list []domain.DropEntry, e domain.DropEntry) []domain.DropEntry {
	out := make([]domain.DropEntry, len(list), len(list)+1)
	copy(out, list)
	return append(out, e)
}
