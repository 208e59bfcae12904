package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/habitloop/habitd/internal/domain"
)

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Describe renders a stable human-readable schedule summary for
// user-facing confirmation messages, e.g.
// "Every Monday, Friday at 18:00 Europe/Paris".
func Describe(s domain.Schedule) string {
	at := fmt.Sprintf("at %02d:%02d %s", s.Hour, s.Minute, zoneLabel(s.Timezone))

	switch s.Type {
	case domain.ScheduleWeekly:
		return fmt.Sprintf("Every %s %s", joinWeekdays(s.DaysOfWeek), at)
	case domain.ScheduleMonthly:
		return fmt.Sprintf("On day %s of each month %s", joinInts(s.DaysOfMonth), at)
	case domain.ScheduleInterval:
		every := fmt.Sprintf("Every %d days", s.IntervalDays)
		if s.IntervalDays == 1 {
			every = "Every day"
		}
		if !s.StartDate.IsZero() {
			return fmt.Sprintf("%s from %s %s", every, s.StartDate, at)
		}
		return fmt.Sprintf("%s %s", every, at)
	default:
		return fmt.Sprintf("Every day %s", at)
	}
}

func joinWeekdays(days []int) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			names = append(names, weekdayNames[d])
		}
	}
	return strings.Join(names, ", ")
}

func joinInts(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ", ")
}

func zoneLabel(tz string) string {
	if tz == "" {
		return "UTC"
	}
	return tz
}
