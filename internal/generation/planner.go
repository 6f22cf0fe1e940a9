// Package generation orchestrates plan creation: it turns schedule
// state into prompts, drives the generation boundary, validates what
// comes back, and tracks the multi-stage workflow.
package generation

import (
	"context"
	"strings"
	"time"

	"weekplanner/internal/apperr"
	"weekplanner/internal/llm"
	"weekplanner/internal/plan"
	"weekplanner/internal/prompt"
	"weekplanner/internal/schedule"
	"weekplanner/internal/shared"
)

// PlanRequest describes one plan-generation call. When both CurrentPlan
// and RegenerateSlots are non-empty the selective-regeneration prompt is
// used; otherwise a full fresh plan is requested.
type PlanRequest struct {
	State           schedule.AppState
	PreviousMeals   []string
	CurrentPlan     []plan.DayPlan
	RegenerateSlots []plan.MealSlot
}

// Selective reports whether this request replaces only marked slots.
func (r PlanRequest) Selective() bool {
	return len(r.CurrentPlan) > 0 && len(r.RegenerateSlots) > 0
}

// Planner drives the generation boundary for the two request kinds.
type Planner struct {
	textGen llm.TextGenerator
}

// NewPlanner creates a new Planner instance.
func NewPlanner(textGen llm.TextGenerator) *Planner {
	return &Planner{textGen: textGen}
}

// GeneratePlan requests a week plan. Every failure of the boundary,
// including schema-invalid output, maps to a GenerationFailed outcome.
func (p *Planner) GeneratePlan(ctx context.Context, req PlanRequest) ([]plan.DayPlan, shared.CallMeta, error) {
	var promptText string
	operation := "meal-plan"
	if req.Selective() {
		operation = "regeneration"
		promptText = prompt.BuildPartialRegenerationPrompt(req.State, req.CurrentPlan, req.RegenerateSlots, req.PreviousMeals)
	} else {
		promptText = prompt.BuildMealPlanPrompt(req.State, req.PreviousMeals)
	}

	start := time.Now()
	resp, err := p.textGen.GenerateContent(ctx, promptText)
	meta := shared.CallMeta{Operation: operation, Usage: resp.Usage, Latency: time.Since(start)}
	if err != nil {
		return nil, meta, apperr.Wrap(apperr.GenerationFailed, "failed to generate meal plan", err)
	}

	parsed, err := plan.ParsePlanResponse([]byte(extractJSON(resp.Content)))
	if err != nil {
		return nil, meta, apperr.Wrap(apperr.GenerationFailed, "generator returned an invalid plan", err)
	}
	return parsed.WeekPlan, meta, nil
}

// GenerateShoppingList requests the shopping trips for a confirmed plan.
func (p *Planner) GenerateShoppingList(ctx context.Context, weekPlan []plan.DayPlan) ([]plan.ShoppingTrip, shared.CallMeta, error) {
	promptText := prompt.BuildShoppingListPrompt(weekPlan)

	start := time.Now()
	resp, err := p.textGen.GenerateContent(ctx, promptText)
	meta := shared.CallMeta{Operation: "shopping-list", Usage: resp.Usage, Latency: time.Since(start)}
	if err != nil {
		return nil, meta, apperr.Wrap(apperr.GenerationFailed, "failed to generate shopping list", err)
	}

	parsed, err := plan.ParseShoppingResponse([]byte(extractJSON(resp.Content)))
	if err != nil {
		return nil, meta, apperr.Wrap(apperr.GenerationFailed, "generator returned an invalid shopping list", err)
	}
	return parsed.ShoppingTrips, meta, nil
}

// extractJSON strips a markdown code fence if the model wrapped its
// JSON in one.
func extractJSON(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if i := strings.LastIndex(trimmed, "```"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return strings.TrimSpace(trimmed)
}
