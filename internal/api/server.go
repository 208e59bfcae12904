// Package api provides the habitd HTTP API: habit management, check-in
// ingestion, history reconstruction, and due inspection.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/habitloop/habitd/internal/app/notify"
	"github.com/habitloop/habitd/internal/app/schedule"
	"github.com/habitloop/habitd/internal/app/streak"
	"github.com/habitloop/habitd/internal/domain"
	"github.com/habitloop/habitd/internal/infra/store"
)

// Server is the habitd HTTP API server.
type Server struct {
	store          *store.DB
	checkins       *streak.Service
	eval           *schedule.Evaluator
	selector       *notify.Selector
	metricsEnabled bool
}

// NewServer creates a new API server over the wired services.
func NewServer(db *store.DB, checkins *streak.Service, eval *schedule.Evaluator, selector *notify.Selector) *Server {
	return &Server{store: db, checkins: checkins, eval: eval, selector: selector}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/due", s.handleDue)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Put("/preferences", s.handleSetPreferences)

			r.Route("/habits", func(r chi.Router) {
				r.Get("/", s.handleListHabits)
				r.Post("/", s.handleCreateHabit)

				r.Route("/{habitID}", func(r chi.Router) {
					r.Get("/", s.handleShowHabit)
					r.Post("/checkin", s.handleCheckIn)
					r.Put("/schedule", s.handleUpdateSchedule)
					r.Get("/history", s.handleHistory)
				})
			})
		})
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps domain errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrHabitNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
