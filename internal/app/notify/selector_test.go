package notify_test

import (
	"errors"
	"testing"
	"time"

	"github.com/habitloop/habitd/internal/app/notify"
	"github.com/habitloop/habitd/internal/app/schedule"
	"github.com/habitloop/habitd/internal/domain"
	"github.com/habitloop/habitd/internal/infra/store"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func putUser(t *testing.T, db *store.DB, id string, rec domain.UserRecord) {
	t.Helper()
	if err := db.Put(id, rec); err != nil {
		t.Fatalf("put %s: %v", id, err)
	}
}

func dailyAt(hour int, tz string) *domain.Schedule {
	return &domain.Schedule{Type: domain.ScheduleDaily, Hour: hour, Timezone: tz}
}

// ═══════════════════════════════════════════════════════════════════════════
// Selector Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestSelectDue_GroupsByUser(t *testing.T) {
	db := testDB(t)
	putUser(t, db, "bob", domain.UserRecord{Habits: []domain.Habit{
		{ID: "b1", UserID: "bob", Name: "run", CreatedAt: "2026-01-01", RemindersEnabled: true, Schedule: dailyAt(9, "UTC")},
	}})
	putUser(t, db, "alice", domain.UserRecord{Habits: []domain.Habit{
		{ID: "a1", UserID: "alice", Name: "read", CreatedAt: "2026-01-01", RemindersEnabled: true, Schedule: dailyAt(9, "UTC")},
		{ID: "a2", UserID: "alice", Name: "stretch", CreatedAt: "2026-01-01", RemindersEnabled: true, Schedule: dailyAt(21, "UTC")},
	}})

	sel := notify.NewSelector(db, schedule.New(), 2)
	batches, err := sel.SelectDue(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("SelectDue: %v", err)
	}

	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
	if batches[0].UserID != "alice" || batches[1].UserID != "bob" {
		t.Errorf("batches not ordered by user: %s, %s", batches[0].UserID, batches[1].UserID)
	}
	if len(batches[0].Habits) != 1 || batches[0].Habits[0].ID != "a1" {
		t.Errorf("alice should have only the 09:00 habit due, got %v", batches[0].Habits)
	}
}

func TestSelectDue_SkipsBlockedUsers(t *testing.T) {
	db := testDB(t)
	putUser(t, db, "alice", domain.UserRecord{
		Preferences: domain.UserPreference{Blocked: true},
		Habits: []domain.Habit{
			{ID: "a1", UserID: "alice", CreatedAt: "2026-01-01", RemindersEnabled: true, Schedule: dailyAt(9, "UTC")},
		},
	})

	sel := notify.NewSelector(db, schedule.New(), 1)
	batches, err := sel.SelectDue(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("SelectDue: %v", err)
	}
	if len(batches) != 0 {
		t.Errorf("blocked user should produce no batch, got %v", batches)
	}
}

func TestSelectDue_ExcludesCheckedToday(t *testing.T) {
	db := testDB(t)
	putUser(t, db, "alice", domain.UserRecord{Habits: []domain.Habit{
		{ID: "a1", UserID: "alice", CreatedAt: "2026-01-01", RemindersEnabled: true,
			LastChecked: "2026-01-05", Streak: 1, Schedule: dailyAt(9, "UTC")},
	}})

	sel := notify.NewSelector(db, schedule.New(), 1)
	batches, err := sel.SelectDue(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("SelectDue: %v", err)
	}
	if len(batches) != 0 {
		t.Errorf("habit already checked today should not be due, got %v", batches)
	}
}

func TestSelectDue_UserZoneAppliesToDefaultSchedule(t *testing.T) {
	db := testDB(t)
	putUser(t, db, "alice", domain.UserRecord{
		Preferences: domain.UserPreference{Timezone: "Europe/Paris"},
		Habits: []domain.Habit{
			{ID: "a1", UserID: "alice", CreatedAt: "2026-01-01", RemindersEnabled: true},
		},
	})

	sel := notify.NewSelector(db, schedule.New(), 1)

	// 09:00 Paris in winter is 08:00 UTC.
	batches, err := sel.SelectDue(time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("SelectDue: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("expected default schedule to fire at 09:00 Paris, got %v", batches)
	}

	batches, err = sel.SelectDue(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("SelectDue: %v", err)
	}
	if len(batches) != 0 {
		t.Errorf("09:00 UTC is 10:00 Paris, nothing should be due, got %v", batches)
	}
}

// faultyStore fails on one user id to exercise per-user error isolation.
type faultyStore struct {
	inner   notify.Store
	failFor string
}

func (f *faultyStore) ListUserIDs() ([]string, error) { return f.inner.ListUserIDs() }

func (f *faultyStore) Get(userID string) (domain.UserRecord, error) {
	if userID == f.failFor {
		return domain.UserRecord{}, errors.New("record corrupted")
	}
	return f.inner.Get(userID)
}

func TestSelectDue_UserFailureIsIsolated(t *testing.T) {
	db := testDB(t)
	putUser(t, db, "alice", domain.UserRecord{Habits: []domain.Habit{
		{ID: "a1", UserID: "alice", CreatedAt: "2026-01-01", RemindersEnabled: true, Schedule: dailyAt(9, "UTC")},
	}})
	putUser(t, db, "bob", domain.UserRecord{Habits: []domain.Habit{
		{ID: "b1", UserID: "bob", CreatedAt: "2026-01-01", RemindersEnabled: true, Schedule: dailyAt(9, "UTC")},
	}})

	sel := notify.NewSelector(&faultyStore{inner: db, failFor: "alice"}, schedule.New(), 2)
	batches, err := sel.SelectDue(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("one failing user must not fail the sweep: %v", err)
	}
	if len(batches) != 1 || batches[0].UserID != "bob" {
		t.Errorf("expected bob's batch to survive, got %v", batches)
	}
}
