package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/habitloop/habitd/internal/domain"
)

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("time must be HH:MM, got %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("time must be HH:MM, got %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("time must be HH:MM, got %q", s)
	}
	return h, m, nil
}

// parseIntList parses "1,5" into []int{1, 5}.
func parseIntList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("expected comma-separated numbers, got %q", s)
		}
		out = append(out, n)
	}
	return out, nil
}

// resolveHabit finds a habit by id or, failing that, by exact name.
func resolveHabit(rec domain.UserRecord, ref string) (domain.Habit, error) {
	if h := rec.FindHabit(ref); h != nil {
		return *h, nil
	}
	for _, h := range rec.Habits {
		if h.Name == ref {
			return h, nil
		}
	}
	return domain.Habit{}, fmt.Errorf("no habit %q: %w", ref, domain.ErrHabitNotFound)
}

// parseOutcome maps CLI spellings onto check-in outcomes.
func parseOutcome(s string) (domain.Outcome, error) {
	switch s {
	case "done", "completed", "yes":
		return domain.OutcomeCompleted, nil
	case "skip", "skipped":
		return domain.OutcomeSkipped, nil
	case "drop", "dropped", "no":
		return domain.OutcomeDropped, nil
	}
	return "", fmt.Errorf("unknown outcome %q (want done, skip, or drop)", s)
}

func nowUTC() time.Time { return time.Now().UTC() }
