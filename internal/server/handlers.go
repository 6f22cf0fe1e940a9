package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"weekplanner/internal/apperr"
	"weekplanner/internal/auth"
	"weekplanner/internal/generation"
	"weekplanner/internal/plan"
	"weekplanner/internal/schedule"
	"weekplanner/internal/shared"
	"weekplanner/internal/weekkey"
)

// generatePlanRequest is the body of POST /api/generate-meal-plan.
// currentPlan and regenerateSlots together switch the call into
// selective-regeneration mode; weekKey enables last-week de-dup.
type generatePlanRequest struct {
	AppState        schedule.AppState `json:"appState"`
	WeekKey         string            `json:"weekKey,omitempty"`
	CurrentPlan     []plan.DayPlan    `json:"currentPlan,omitempty"`
	RegenerateSlots []plan.MealSlot   `json:"regenerateSlots,omitempty"`
}

func (s *Server) handleGenerateMealPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserID(ctx)

	if err := s.checkRateLimit(ctx, w, userID); err != nil {
		return
	}

	var req generatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.ValidationFailed, "invalid request body", err))
		return
	}
	if err := req.AppState.Validate(); err != nil {
		writeError(w, apperr.Wrap(apperr.ValidationFailed, "invalid app state", err))
		return
	}
	if req.WeekKey != "" && !weekkey.IsValid(req.WeekKey) {
		writeError(w, apperr.New(apperr.ValidationFailed, fmt.Sprintf("invalid week key %q", req.WeekKey)))
		return
	}
	if len(req.RegenerateSlots) > 0 {
		if err := plan.ValidateWeekPlan(req.CurrentPlan); err != nil {
			writeError(w, apperr.Wrap(apperr.ValidationFailed, "invalid current plan", err))
			return
		}
		for _, slot := range req.RegenerateSlots {
			if err := slot.Validate(); err != nil {
				writeError(w, apperr.Wrap(apperr.ValidationFailed, "invalid regeneration slot", err))
				return
			}
		}
	}

	// Previous week's meals, so the generator can avoid repeats. A
	// missing previous plan is the normal case for a first save.
	var previousMeals []string
	if req.WeekKey != "" {
		if prevKey, err := weekkey.Previous(req.WeekKey); err == nil {
			if prev, err := s.planStore.Get(ctx, userID, prevKey); err == nil {
				previousMeals = plan.MealNames(prev.Result.WeekPlan)
			} else if !apperr.Is(err, apperr.NotFound) {
				slog.Warn("loading previous week's plan", "weekKey", prevKey, "error", err)
			}
		}
	}

	weekPlan, meta, err := s.planner.GeneratePlan(ctx, generation.PlanRequest{
		State:           req.AppState,
		PreviousMeals:   previousMeals,
		CurrentPlan:     req.CurrentPlan,
		RegenerateSlots: req.RegenerateSlots,
	})
	s.recordMeta(meta)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plan.PlanResponse{WeekPlan: weekPlan})
}

type generateShoppingRequest struct {
	WeekPlan []plan.DayPlan `json:"weekPlan"`
}

func (s *Server) handleGenerateShoppingList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserID(ctx)

	if err := s.checkRateLimit(ctx, w, userID); err != nil {
		return
	}

	var req generateShoppingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.ValidationFailed, "invalid request body", err))
		return
	}
	if err := plan.ValidateWeekPlan(req.WeekPlan); err != nil {
		writeError(w, apperr.Wrap(apperr.ValidationFailed, "invalid week plan", err))
		return
	}

	trips, meta, err := s.planner.GenerateShoppingList(ctx, req.WeekPlan)
	s.recordMeta(meta)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plan.ShoppingResponse{ShoppingTrips: trips})
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserID(ctx)

	keys, err := s.planStore.ListIndex(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	// Display metadata comes from the week key alone, never from
	// stored timestamps: index and display stay decoupled.
	items := make([]plan.ListItem, 0, len(keys))
	for _, key := range keys {
		info, err := weekkey.InfoFor(key)
		if err != nil {
			slog.Warn("skipping malformed week key in index", "weekKey", key, "error", err)
			continue
		}
		items = append(items, plan.ListItem{
			WeekKey:    key,
			WeekNumber: info.WeekNumber,
			Year:       info.Year,
			DateRange:  info.DateRange,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"plans": items})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserID(ctx)
	wk := chi.URLParam(r, "weekKey")

	if !weekkey.IsValid(wk) {
		writeError(w, apperr.New(apperr.ValidationFailed, fmt.Sprintf("invalid week key %q", wk)))
		return
	}

	p, err := s.planStore.Get(ctx, userID, wk)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plan": p})
}

type savePlanRequest struct {
	InputState schedule.AppState `json:"inputState"`
	Result     plan.Result       `json:"result"`
}

func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserID(ctx)
	wk := chi.URLParam(r, "weekKey")

	if !weekkey.IsValid(wk) {
		writeError(w, apperr.New(apperr.ValidationFailed, fmt.Sprintf("invalid week key %q", wk)))
		return
	}

	var req savePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.ValidationFailed, "invalid request body", err))
		return
	}

	persisted := plan.PersistedPlan{
		WeekKey:    wk,
		CreatedAt:  time.Now().UTC(),
		InputState: req.InputState,
		Result:     req.Result,
	}
	if err := s.planStore.Save(ctx, userID, persisted); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserID(ctx)
	wk := chi.URLParam(r, "weekKey")

	if !weekkey.IsValid(wk) {
		writeError(w, apperr.New(apperr.ValidationFailed, fmt.Sprintf("invalid week key %q", wk)))
		return
	}

	if err := s.planStore.Delete(ctx, userID, wk); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleGetChecked(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wk := chi.URLParam(r, "weekKey")

	if !weekkey.IsValid(wk) {
		writeError(w, apperr.New(apperr.ValidationFailed, fmt.Sprintf("invalid week key %q", wk)))
		return
	}

	ids, err := s.planStore.GetChecked(ctx, wk)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"checkedIds": ids})
}

type setCheckedRequest struct {
	CheckedIDs []string `json:"checkedIds"`
}

func (s *Server) handleSetChecked(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wk := chi.URLParam(r, "weekKey")

	if !weekkey.IsValid(wk) {
		writeError(w, apperr.New(apperr.ValidationFailed, fmt.Sprintf("invalid week key %q", wk)))
		return
	}

	var req setCheckedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.ValidationFailed, "invalid request body", err))
		return
	}
	if err := s.planStore.SetChecked(ctx, wk, req.CheckedIDs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// checkRateLimit enforces the fixed window for generation endpoints.
// It writes the throttled response itself and returns non-nil when the
// request must not proceed.
func (s *Server) checkRateLimit(ctx context.Context, w http.ResponseWriter, userID string) error {
	res, err := s.limiter.Check(ctx, "meal-plan:"+userID, s.cfg.RateLimitRequests, s.cfg.RateLimitWindowSec)
	if err != nil {
		slog.Error("rate limit check failed", "error", err)
		writeError(w, apperr.Wrap(apperr.PersistenceFailed, "rate limit check failed", err))
		return err
	}
	if !res.Allowed {
		retryAfter := res.RetryAfter(time.Now())
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds()+0.999)))
		writeError(w, apperr.Throttle(retryAfter))
		return apperr.Throttle(retryAfter)
	}
	return nil
}

func (s *Server) recordMeta(meta shared.CallMeta) {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.RecordMeta(meta); err != nil {
		slog.Warn("recording generation metrics", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// writeError maps the taxonomy to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var e *apperr.Error
	if errors.As(err, &e) {
		message = e.Message
		switch e.Kind {
		case apperr.Unauthorized:
			status = http.StatusUnauthorized
		case apperr.Throttled:
			status = http.StatusTooManyRequests
		case apperr.ValidationFailed:
			status = http.StatusBadRequest
		case apperr.NotFound:
			status = http.StatusNotFound
		case apperr.GenerationFailed, apperr.PersistenceFailed:
			status = http.StatusInternalServerError
		}
	}

	body := map[string]any{"error": message}
	if e != nil && e.Kind == apperr.Throttled {
		body["retryAfter"] = int(e.RetryAfter.Seconds() + 0.999)
	}
	writeJSON(w, status, body)
}
