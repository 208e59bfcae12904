package domain_test

import (
	"testing"
	"time"

	"github.com/habitloop/habitd/internal/domain"
)

func TestParseDate(t *testing.T) {
	if _, err := domain.ParseDate("2026-01-05"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"", "January 5", "2026-13-01", "2026-1-5", "05-01-2026"} {
		if _, err := domain.ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) accepted malformed input", bad)
		}
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	// 23:30 UTC on Jan 5 is already Jan 6 in Paris.
	at := time.Date(2026, 1, 5, 23, 30, 0, 0, time.UTC)
	if got := domain.DateOf(at, time.UTC); got != "2026-01-05" {
		t.Errorf("UTC date = %s", got)
	}
	if got := domain.DateOf(at, paris); got != "2026-01-06" {
		t.Errorf("Paris date = %s", got)
	}
}

func TestAddDays(t *testing.T) {
	d := domain.Date("2026-01-05")
	if got := d.AddDays(1); got != "2026-01-06" {
		t.Errorf("AddDays(1) = %s", got)
	}
	if got := d.AddDays(-5); got != "2025-12-31" {
		t.Errorf("AddDays(-5) = %s", got)
	}
	if got := domain.Date("2026-02-28").AddDays(1); got != "2026-03-01" {
		t.Errorf("month rollover = %s", got)
	}
}

func TestOrdering(t *testing.T) {
	a, b := domain.Date("2026-01-05"), domain.Date("2026-01-06")
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Error("date ordering broken")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a date neither precedes nor follows itself")
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b domain.Date
		want int
	}{
		{"2026-01-01", "2026-01-01", 0},
		{"2026-01-01", "2026-01-08", 7},
		{"2026-01-08", "2026-01-01", -7},
		{"2025-12-30", "2026-01-02", 3},
	}
	for _, tt := range tests {
		if got := domain.DaysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWeekdayAndDayOfMonth(t *testing.T) {
	d := domain.Date("2026-01-05") // a Monday
	if got := d.Weekday(); got != 1 {
		t.Errorf("Weekday() = %d, want 1", got)
	}
	if got := d.DayOfMonth(); got != 5 {
		t.Errorf("DayOfMonth() = %d, want 5", got)
	}
	if got := domain.Date("2026-01-04").Weekday(); got != 0 {
		t.Errorf("Sunday should be 0, got %d", got)
	}
}
