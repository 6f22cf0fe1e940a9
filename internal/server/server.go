// Package server exposes the planning workflow over HTTP: plan
// generation, shopping-list derivation, and the persisted-plan CRUD
// surface. Every route authenticates first, rate-limits the generation
// endpoints, validates input, and only then touches a boundary.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"weekplanner/internal/auth"
	"weekplanner/internal/config"
	"weekplanner/internal/generation"
	"weekplanner/internal/metrics"
	"weekplanner/internal/ratelimit"
	"weekplanner/internal/store"
)

// Server wires the handlers to their dependencies.
type Server struct {
	planner   *generation.Planner
	planStore *store.PlanStore
	limiter   *ratelimit.Limiter
	metrics   *metrics.Store // optional
	cfg       *config.Config
}

// New creates a Server. metricsStore may be nil.
func New(planner *generation.Planner, planStore *store.PlanStore, limiter *ratelimit.Limiter, metricsStore *metrics.Store, cfg *config.Config) *Server {
	return &Server{
		planner:   planner,
		planStore: planStore,
		limiter:   limiter,
		metrics:   metricsStore,
		cfg:       cfg,
	}
}

// Router builds the chi router with auth and logging applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware([]byte(s.cfg.JWTSecret)))

		r.Post("/api/generate-meal-plan", s.handleGenerateMealPlan)
		r.Post("/api/generate-shopping-list", s.handleGenerateShoppingList)

		r.Get("/api/plans", s.handleListPlans)
		r.Get("/api/plans/{weekKey}", s.handleGetPlan)
		r.Put("/api/plans/{weekKey}", s.handleSavePlan)
		r.Delete("/api/plans/{weekKey}", s.handleDeletePlan)

		r.Get("/api/plans/{weekKey}/checked", s.handleGetChecked)
		r.Put("/api/plans/{weekKey}/checked", s.handleSetChecked)
	})

	return r
}

// requestLogger tags each request with an id and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
