package domain

// Outcome is a check-in result fed to the streak state machine.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeDropped   Outcome = "dropped"
	OutcomeSkipped   Outcome = "skipped"
)

// Valid reports whether o is one of the three defined outcomes.
func (o Outcome) Valid() bool {
	return o == OutcomeCompleted || o == OutcomeDropped || o == OutcomeSkipped
}

// SkipEntry records a day the user deferred without breaking the streak.
// Streak is the streak value at the moment of the skip.
type SkipEntry struct {
	Streak int  `json:"streak"`
	Date   Date `json:"date"`
}

// DropEntry records a day the streak was explicitly reset to zero.
// Streak is the value destroyed by the drop.
type DropEntry struct {
	Streak int  `json:"streak"`
	Date   Date `json:"date"`
}

// Habit is one tracked routine belonging to one user.
//
// The persisted representation is deliberately sparse: only the current
// streak plus append-only exception lists (skips, drops, and explicit
// completions for non-daily schedules). The full day-by-day timeline is
// rebuilt on demand — see app/history.
type Habit struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`

	Streak      int  `json:"streak"`
	BestStreak  int  `json:"best_streak"`
	CreatedAt   Date `json:"created_at"`
	LastChecked Date `json:"last_checked,omitempty"`

	Skipped []SkipEntry `json:"skipped,omitempty"` // append-only
	Dropped []DropEntry `json:"dropped,omitempty"` // append-only
	Checked []Date      `json:"checked,omitempty"` // non-daily schedules only

	// Schedule is the recurrence rule. Nil means daily at the default
	// reminder time in the owner's zone.
	Schedule *Schedule `json:"schedule,omitempty"`

	RemindersEnabled bool `json:"reminders_enabled"`
	Disabled         bool `json:"disabled"`

	// Badges holds milestone values already awarded. Monotone: a badge
	// is never revoked even if the streak later drops.
	Badges []int `json:"badges,omitempty"`
}

// Active reports whether reminders and reconstruction should treat this
// habit as live.
func (h Habit) Active() bool { return h.RemindersEnabled && !h.Disabled }

// CheckedToday reports whether a check-in of any kind already landed on
// the given day. Enforces the one-transition-per-day guard.
func (h Habit) CheckedToday(today Date) bool { return !h.LastChecked.IsZero() && h.LastChecked == today }

// IsDaily reports whether completions are inferred rather than recorded.
// Daily habits never populate Checked.
func (h Habit) IsDaily() bool {
	return h.Schedule == nil || h.Schedule.Type == ScheduleDaily
}

// HasBadge reports whether a milestone value was already awarded.
func (h Habit) HasBadge(milestone int) bool {
	for _, b := range h.Badges {
		if b == milestone {
			return true
		}
	}
	return false
}

// UserPreference holds per-user reminder settings. Timezone is an IANA
// name; empty means UTC.
type UserPreference struct {
	Timezone string `json:"timezone,omitempty"`
	Consent  bool   `json:"consent"`
	Blocked  bool   `json:"blocked"`
}

// UserRecord is the whole per-user blob held by the record store.
// The store has no partial updates: callers load the record, mutate,
// and write the whole thing back.
type UserRecord struct {
	Habits      []Habit        `json:"habits"`
	Preferences UserPreference `json:"preferences"`
}

// FindHabit returns a pointer into Habits, or nil if the id is unknown.
func (r *UserRecord) FindHabit(id string) *Habit {
	for i := range r.Habits {
		if r.Habits[i].ID == id {
			return &r.Habits[i]
		}
	}
	return nil
}
