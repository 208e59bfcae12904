package domain

// ScheduleType tags the recurrence rule variant.
type ScheduleType string

const (
	ScheduleDaily    ScheduleType = "daily"
	ScheduleWeekly   ScheduleType = "weekly"
	ScheduleMonthly  ScheduleType = "monthly"
	ScheduleInterval ScheduleType = "interval"
)

// Schedule is the persisted recurrence rule. Hour and minute are local
// to Timezone; the per-type day fields are only meaningful for their
// own variant.
type Schedule struct {
	Type     ScheduleType `json:"type"`
	Hour     int          `json:"hour"`
	Minute   int          `json:"minute"`
	Timezone string       `json:"timezone"`

	DaysOfWeek   []int `json:"daysOfWeek,omitempty"`   // weekly: 0..6, 0 = Sunday
	DaysOfMonth  []int `json:"daysOfMonth,omitempty"`  // monthly: 1..31
	IntervalDays int   `json:"intervalDays,omitempty"` // interval: positive
	StartDate    Date  `json:"startDate,omitempty"`    // interval: defaults to habit creation
}
