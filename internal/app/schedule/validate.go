package schedule

import (
	"time"

	"github.com/habitloop/habitd/internal/domain"
)

// Validate rejects malformed schedule input at the write path, before
// any state mutation. The evaluator itself assumes validated input.
func Validate(s domain.Schedule) error {
	switch s.Type {
	case domain.ScheduleDaily, domain.ScheduleWeekly, domain.ScheduleMonthly, domain.ScheduleInterval:
	default:
		return domain.Invalid("type", "must be daily, weekly, monthly, or interval")
	}

	if s.Hour < 0 || s.Hour > 23 {
		return domain.Invalid("hour", "must be in 0..23")
	}
	if s.Minute < 0 || s.Minute > 59 {
		return domain.Invalid("minute", "must be in 0..59")
	}
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return domain.Invalid("timezone", "unknown IANA zone")
		}
	}

	switch s.Type {
	case domain.ScheduleWeekly:
		if len(s.DaysOfWeek) == 0 {
			return domain.Invalid("daysOfWeek", "must not be empty")
		}
		for _, d := range s.DaysOfWeek {
			if d < 0 || d > 6 {
				return domain.Invalid("daysOfWeek", "days must be in 0..6")
			}
		}
	case domain.ScheduleMonthly:
		if len(s.DaysOfMonth) == 0 {
			return domain.Invalid("daysOfMonth", "must not be empty")
		}
		for _, d := range s.DaysOfMonth {
			if d < 1 || d > 31 {
				return domain.Invalid("daysOfMonth", "days must be in 1..31")
			}
		}
	case domain.ScheduleInterval:
		if s.IntervalDays < 1 {
			return domain.Invalid("intervalDays", "must be positive")
		}
		if !s.StartDate.IsZero() {
			if _, err := domain.ParseDate(string(s.StartDate)); err != nil {
				return domain.Invalid("startDate", "must be YYYY-MM-DD")
			}
		}
	}
	return nil
}
