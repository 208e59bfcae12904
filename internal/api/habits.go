package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/habitloop/habitd/internal/app/history"
	"github.com/habitloop/habitd/internal/app/schedule"
	"github.com/habitloop/habitd/internal/domain"
)

// habitView decorates a habit with its rendered schedule summary.
type habitView struct {
	domain.Habit
	ScheduleText string `json:"schedule_text"`
}

func (s *Server) view(h domain.Habit, userTZ string) habitView {
	sched := domain.Schedule{
		Type:     domain.ScheduleDaily,
		Hour:     s.eval.DefaultHour,
		Minute:   s.eval.DefaultMinute,
		Timezone: userTZ,
	}
	if h.Schedule != nil {
		sched = *h.Schedule
	}
	return habitView{Habit: h, ScheduleText: schedule.Describe(sched)}
}

// userToday resolves "today" in the user's preferred zone.
func (s *Server) userToday(rec domain.UserRecord) domain.Date {
	return s.eval.LocalDate(time.Now(), rec.Preferences.Timezone)
}

// --- POST /api/users/{userID}/habits ---

type createHabitRequest struct {
	Name     string           `json:"name"`
	Schedule *domain.Schedule `json:"schedule,omitempty"`
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeDomainError(w, domain.Invalid("name", "must not be empty"))
		return
	}
	if req.Schedule != nil {
		if err := schedule.Validate(*req.Schedule); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	var created domain.Habit
	var userTZ string
	err := s.checkins.Update(userID, func(rec *domain.UserRecord) error {
		userTZ = rec.Preferences.Timezone
		created = domain.Habit{
			ID:               uuid.NewString(),
			UserID:           userID,
			Name:             req.Name,
			CreatedAt:        s.userToday(*rec),
			Schedule:         req.Schedule,
			RemindersEnabled: true,
		}
		rec.Habits = append(rec.Habits, created)
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.view(created, userTZ))
}

// --- GET /api/users/{userID}/habits ---

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	rec, err := s.store.Get(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]habitView, len(rec.Habits))
	for i, h := range rec.Habits {
		out[i] = s.view(h, rec.Preferences.Timezone)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"habits": out})
}

// --- GET /api/users/{userID}/habits/{habitID} ---

func (s *Server) handleShowHabit(w http.ResponseWriter, r *http.Request) {
	rec, h, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.view(*h, rec.Preferences.Timezone))
}

// --- POST /api/users/{userID}/habits/{habitID}/checkin ---

type checkInRequest struct {
	Outcome domain.Outcome `json:"outcome"`
	Date    string         `json:"date,omitempty"` // YYYY-MM-DD, default today
}

type checkInResponse struct {
	Habit     habitView `json:"habit"`
	NewBadges []int     `json:"new_badges,omitempty"`
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	habitID := chi.URLParam(r, "habitID")

	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.store.Get(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	today := s.userToday(rec)
	if req.Date != "" {
		today, err = domain.ParseDate(req.Date)
		if err != nil {
			writeDomainError(w, domain.Invalid("date", "must be YYYY-MM-DD"))
			return
		}
	}

	h, badges, err := s.checkins.CheckIn(userID, habitID, today, req.Outcome)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkInResponse{
		Habit:     s.view(h, rec.Preferences.Timezone),
		NewBadges: badges,
	})
}

// --- PUT /api/users/{userID}/habits/{habitID}/schedule ---

func (s *Server) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	habitID := chi.URLParam(r, "habitID")

	var sched domain.Schedule
	if err := json.NewDecoder(r.Body).Decode(&sched); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := schedule.Validate(sched); err != nil {
		writeDomainError(w, err)
		return
	}

	var updated domain.Habit
	err := s.checkins.Update(userID, func(rec *domain.UserRecord) error {
		h := rec.FindHabit(habitID)
		if h == nil {
			return domain.ErrHabitNotFound
		}
		h.Schedule = &sched
		updated = *h
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(updated, ""))
}

// --- GET /api/users/{userID}/habits/{habitID}/history ---

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	rec, h, ok := s.lookup(w, r)
	if !ok {
		return
	}

	timeline := history.Reconstruct(*h, s.userToday(rec))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"habit_id": h.ID,
		"streak":   h.Streak,
		"timeline": timeline,
	})
}

// --- PUT /api/users/{userID}/preferences ---

func (s *Server) handleSetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var prefs domain.UserPreference
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if prefs.Timezone != "" {
		if _, err := s.eval.LoadLocation(prefs.Timezone); err != nil {
			writeDomainError(w, domain.Invalid("timezone", "unknown IANA zone"))
			return
		}
	}

	err := s.checkins.Update(userID, func(rec *domain.UserRecord) error {
		rec.Preferences = prefs
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// --- GET /api/due?at=RFC3339 ---

func (s *Server) handleDue(w http.ResponseWriter, r *http.Request) {
	at := time.Now()
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "at must be RFC3339")
			return
		}
		at = parsed
	}

	batches, err := s.selector.SelectDue(at)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"at":  at.UTC().Format(time.RFC3339),
		"due": batches,
	})
}

// lookup fetches the record and habit named in the URL, writing the
// error response itself on failure.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (domain.UserRecord, *domain.Habit, bool) {
	userID := chi.URLParam(r, "userID")
	habitID := chi.URLParam(r, "habitID")

	rec, err := s.store.Get(userID)
	if err != nil {
		writeDomainError(w, err)
		return domain.UserRecord{}, nil, false
	}
	h := rec.FindHabit(habitID)
	if h == nil {
		writeDomainError(w, domain.ErrHabitNotFound)
		return domain.UserRecord{}, nil, false
	}
	return rec, h, true
}
