// Package history rebuilds a habit's day-by-day timeline from its
// sparse stored representation: the current streak, the skip and drop
// lists, and (for non-daily habits) the explicit completion dates.
//
// The correctness contract: for any habit satisfying the data-model
// invariants, the running streak on the final ("today") entry equals
// the stored streak value.
package history

import (
	"sort"
	"time"

	"github.com/habitloop/habitd/internal/domain"
	"github.com/habitloop/habitd/internal/infra/metrics"
)

// Entry is one reconstructed day. Days without explicit or inferred
// activity are omitted from the timeline entirely.
type Entry struct {
	Date        domain.Date    `json:"date"`
	Outcome     domain.Outcome `json:"outcome"`
	StreakAfter int            `json:"streak_after"`
}

// Reconstruct derives the full timeline from the habit's creation day
// through today, inclusive.
func Reconstruct(h domain.Habit, today domain.Date) []Entry {
	start := time.Now()
	defer func() { metrics.ReconstructSeconds.Observe(time.Since(start).Seconds()) }()

	if h.CreatedAt.IsZero() || today.Before(h.CreatedAt) {
		return nil
	}
	if h.IsDaily() {
		return reconstructDaily(h, today)
	}
	return reconstructExplicit(h, today)
}

// reconstructExplicit handles non-daily habits, which record every
// completion in the checked list. The three event lists merge into one
// sorted date set and replay forward. The creation date is emitted only
// if it coincides with an event.
func reconstructExplicit(h domain.Habit, today domain.Date) []Entry {
	skips := skipSet(h)
	drops := dropSet(h)

	seen := make(map[domain.Date]bool)
	var days []domain.Date
	add := func(d domain.Date) {
		if !seen[d] && !d.After(today) {
			seen[d] = true
			days = append(days, d)
		}
	}
	for _, d := range h.Checked {
		add(d)
	}
	for _, e := range h.Skipped {
		add(e.Date)
	}
	for _, e := range h.Dropped {
		add(e.Date)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	running := 0
	out := make([]Entry, 0, len(days))
	for _, d := range days {
		switch {
		case drops[d]:
			running = 0
			out = append(out, Entry{Date: d, Outcome: domain.OutcomeDropped, StreakAfter: 0})
		case skips[d]:
			out = append(out, Entry{Date: d, Outcome: domain.OutcomeSkipped, StreakAfter: running})
		default:
			running++
			out = append(out, Entry{Date: d, Outcome: domain.OutcomeCompleted, StreakAfter: running})
		}
	}
	return out
}

// reconstructDaily handles daily habits, which never record explicit
// completions. Forward inference from sparse data is ambiguous, so the
// completed set is inferred backward:
//
//  1. Walk backward from today, marking the most recent streak-many
//     eligible days (not a skip or drop) as completed, stopping at the
//     most recent drop.
//  2. For each drop, oldest to newest, backfill the streak it destroyed:
//     streak-before-drop completed days immediately preceding the drop,
//     bounded by the creation day and any earlier recorded day.
//
// A forward replay over the now-determined sets then produces the
// day-ordered, streak-annotated output.
func reconstructDaily(h domain.Habit, today domain.Date) []Entry {
	if h.Streak == 0 && len(h.Skipped) == 0 && len(h.Dropped) == 0 {
		return nil // no interaction evidence
	}

	skips := skipSet(h)
	drops := dropSet(h)
	completed := make(map[domain.Date]bool)

	var lastDrop domain.Date
	for _, e := range h.Dropped {
		if e.Date.After(lastDrop) {
			lastDrop = e.Date
		}
	}

	n := h.Streak
	for cur := today; n > 0 && !cur.Before(h.CreatedAt); cur = cur.AddDays(-1) {
		if !lastDrop.IsZero() && !cur.After(lastDrop) {
			break
		}
		if skips[cur] || drops[cur] {
			continue
		}
		completed[cur] = true
		n--
	}

	for _, e := range h.Dropped {
		n := e.Streak
		for cur := e.Date.AddDays(-1); n > 0 && !cur.Before(h.CreatedAt); cur = cur.AddDays(-1) {
			if skips[cur] || drops[cur] || completed[cur] {
				break
			}
			completed[cur] = true
			n--
		}
	}

	var out []Entry
	running := 0
	for d := h.CreatedAt; !d.After(today); d = d.AddDays(1) {
		switch {
		case drops[d]:
			running = 0
			out = append(out, Entry{Date: d, Outcome: domain.OutcomeDropped, StreakAfter: 0})
		case skips[d]:
			out = append(out, Entry{Date: d, Outcome: domain.OutcomeSkipped, StreakAfter: running})
		case completed[d]:
			running++
			out = append(out, Entry{Date: d, Outcome: domain.OutcomeCompleted, StreakAfter: running})
		}
	}
	return out
}

func skipSet(h domain.Habit) map[domain.Date]bool {
	set := make(map[domain.Date]bool, len(h.Skipped))
	for _, e := range h.Skipped {
		set[e.Date] = true
	}
	return set
}

func dropSet(h domain.Habit) map[domain.Date]bool {
	set := make(map[domain.Date]bool, len(h.Dropped))
	for _, e := range h.Dropped {
		set[e.Date] = true
	}
	return set
}
