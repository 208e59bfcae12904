// Package schedule evaluates recurrence rules against a single instant
// and renders human-readable schedule summaries. It evaluates one
// schedule against one moment — it is not a job queue.
package schedule

import (
	"time"
	_ "time/tzdata" // IANA zone lookups must work without host tzdata

	"github.com/habitloop/habitd/internal/domain"
)

// Default reminder time for habits without an explicit schedule:
// daily at 09:00 in the observer's zone.
const (
	DefaultHour   = 9
	DefaultMinute = 0
)

// Evaluator decides whether a habit is due at a given instant. Zone
// resolution is injectable so the evaluation stays testable without
// ambient locale state.
type Evaluator struct {
	LoadLocation func(name string) (*time.Location, error)

	// Fallback hour/minute for habits with no schedule of their own.
	DefaultHour   int
	DefaultMinute int
}

// New returns an evaluator with the standard zone database and default
// reminder time.
func New() *Evaluator {
	return &Evaluator{
		LoadLocation:  time.LoadLocation,
		DefaultHour:   DefaultHour,
		DefaultMinute: DefaultMinute,
	}
}

// IsDue reports whether the habit's schedule fires at exactly this
// instant, observed from the given IANA zone. The match is exact to
// the minute: a missed evaluation tick means a missed reminder for
// that day, with no catch-up window.
func (e *Evaluator) IsDue(h domain.Habit, at time.Time, observerTZ string) bool {
	if !h.Active() {
		return false
	}

	sched := e.effective(h, observerTZ)
	loc, err := e.location(sched.Timezone, observerTZ)
	if err != nil {
		return false
	}

	local := at.In(loc)
	if local.Hour() != sched.Hour || local.Minute() != sched.Minute {
		return false
	}

	date := domain.DateOf(at, loc)
	switch sched.Type {
	case domain.ScheduleDaily:
		return true
	case domain.ScheduleWeekly:
		return containsInt(sched.DaysOfWeek, date.Weekday())
	case domain.ScheduleMonthly:
		return containsInt(sched.DaysOfMonth, date.DayOfMonth())
	case domain.ScheduleInterval:
		if sched.IntervalDays <= 0 {
			return false
		}
		start := sched.StartDate
		if start.IsZero() {
			start = h.CreatedAt
		}
		span := domain.DaysBetween(start, date)
		return span >= 0 && span%sched.IntervalDays == 0
	}
	return false
}

// LocalDate returns the calendar day of an instant in the named zone,
// falling back to UTC when the zone is empty or unknown.
func (e *Evaluator) LocalDate(at time.Time, tz string) domain.Date {
	loc, err := e.location(tz, "")
	if err != nil {
		loc = time.UTC
	}
	return domain.DateOf(at, loc)
}

// effective resolves the habit's schedule, falling back to the daily
// default in the observer's zone.
func (e *Evaluator) effective(h domain.Habit, observerTZ string) domain.Schedule {
	if h.Schedule != nil {
		return *h.Schedule
	}
	return domain.Schedule{
		Type:     domain.ScheduleDaily,
		Hour:     e.DefaultHour,
		Minute:   e.DefaultMinute,
		Timezone: observerTZ,
	}
}

// location resolves the schedule zone, then the observer zone, then UTC.
func (e *Evaluator) location(scheduleTZ, observerTZ string) (*time.Location, error) {
	tz := scheduleTZ
	if tz == "" {
		tz = observerTZ
	}
	if tz == "" {
		return time.UTC, nil
	}
	return e.LoadLocation(tz)
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
