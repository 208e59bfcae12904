// Package domain holds the pure habit-tracking types shared across the
// engine. Domain types carry no infrastructure dependency.
package domain

import "time"

// DateLayout is the calendar-day wire format used throughout habitd.
const DateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form. Comparison and arithmetic
// operate on whole days; the only sub-day precision in the system lives
// in a schedule's own hour/minute fields.
type Date string

// DateOf truncates an instant to its calendar day in the given location.
func DateOf(t time.Time, loc *time.Location) Date {
	return Date(t.In(loc).Format(DateLayout))
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", err
	}
	return Date(s), nil
}

// Time returns the date at midnight UTC. Zero time for a malformed date.
func (d Date) Time() time.Time {
	t, _ := time.Parse(DateLayout, string(d))
	return t
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d == "" }

// AddDays returns the date n whole days away. n may be negative.
func (d Date) AddDays(n int) Date {
	return Date(d.Time().AddDate(0, 0, n).Format(DateLayout))
}

// Before reports whether d falls before other. Lexicographic order on
// YYYY-MM-DD strings matches chronological order.
func (d Date) Before(other Date) bool { return d < other }

// After reports whether d falls after other.
func (d Date) After(other Date) bool { return d > other }

// Weekday returns the day of week, 0 = Sunday.
func (d Date) Weekday() int { return int(d.Time().Weekday()) }

// DayOfMonth returns the day of month, 1..31.
func (d Date) DayOfMonth() int { return d.Time().Day() }

// DaysBetween returns the whole-day span from a to b, negative if b
// precedes a.
func DaysBetween(a, b Date) int {
	return int(b.Time().Sub(a.Time()) / (24 * time.Hour))
}
