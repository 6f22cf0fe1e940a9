package generation

import (
	"context"
	"sync"

	"weekplanner/internal/apperr"
	"weekplanner/internal/plan"
	"weekplanner/internal/schedule"
)

// Stage is the workflow position of one generation session.
type Stage string

const (
	StageIdle               Stage = "idle"
	StageGeneratingPlan     Stage = "generating-plan"
	StagePlanReady          Stage = "plan-ready"
	StageGeneratingShopping Stage = "generating-shopping"
	StageComplete           Stage = "complete"
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Stage         Stage
	WeekPlan      []plan.DayPlan
	ShoppingTrips []plan.ShoppingTrip
	SelectedSlots []plan.MealSlot
	Err           string
}

// Controller owns the generation state for one session and exposes it
// only through transitions. Requests are issued one at a time by the
// consumer; a completion whose sequence number no longer matches the
// latest dispatch is discarded, so a stale response can never clobber
// newer state (last-write-wins on arrival, not dispatch).
type Controller struct {
	planner *Planner

	mu            sync.Mutex
	stage         Stage
	weekPlan      []plan.DayPlan
	shoppingTrips []plan.ShoppingTrip
	selected      map[plan.MealSlot]struct{}
	errMsg        string
	seq           uint64
}

// NewController creates an idle session.
func NewController(planner *Planner) *Controller {
	return &Controller{
		planner:  planner,
		stage:    StageIdle,
		selected: make(map[plan.MealSlot]struct{}),
	}
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Stage: c.stage,
		Err:   c.errMsg,
	}
	snap.WeekPlan = append(snap.WeekPlan, c.weekPlan...)
	snap.ShoppingTrips = append(snap.ShoppingTrips, c.shoppingTrips...)
	for s := range c.selected {
		snap.SelectedSlots = append(snap.SelectedSlots, s)
	}
	return snap
}

// GeneratePlan runs idle → generating-plan → plan-ready. On failure the
// session returns to idle with the error message set.
func (c *Controller) GeneratePlan(ctx context.Context, state schedule.AppState, previousMeals []string) error {
	c.mu.Lock()
	c.stage = StageGeneratingPlan
	c.errMsg = ""
	c.seq++
	id := c.seq
	c.mu.Unlock()

	weekPlan, _, err := c.planner.GeneratePlan(ctx, PlanRequest{State: state, PreviousMeals: previousMeals})

	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.seq {
		// A newer request was dispatched while this one was in
		// flight; its result owns the state now.
		return nil
	}
	if err != nil {
		c.stage = StageIdle
		c.errMsg = err.Error()
		return err
	}
	c.stage = StagePlanReady
	c.weekPlan = weekPlan
	c.shoppingTrips = nil
	c.selected = make(map[plan.MealSlot]struct{})
	return nil
}

// RegeneratePlan runs plan-ready → generating-plan → plan-ready. With a
// non-empty selection only the marked slots are replaced; with an empty
// selection it behaves exactly like GeneratePlan. A failure keeps the
// session in plan-ready so the user does not lose the current plan.
func (c *Controller) RegeneratePlan(ctx context.Context, state schedule.AppState, previousMeals []string) error {
	c.mu.Lock()
	currentPlan := append([]plan.DayPlan(nil), c.weekPlan...)
	slots := make([]plan.MealSlot, 0, len(c.selected))
	for _, d := range schedule.DaysOrder {
		for _, m := range schedule.MealsOrder {
			if _, ok := c.selected[plan.MealSlot{Day: d, Meal: m}]; ok {
				slots = append(slots, plan.MealSlot{Day: d, Meal: m})
			}
		}
	}
	c.stage = StageGeneratingPlan
	c.shoppingTrips = nil
	c.errMsg = ""
	c.seq++
	id := c.seq
	c.mu.Unlock()

	req := PlanRequest{State: state, PreviousMeals: previousMeals}
	if len(slots) > 0 {
		req.CurrentPlan = currentPlan
		req.RegenerateSlots = slots
	}
	weekPlan, _, err := c.planner.GeneratePlan(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.seq {
		return nil
	}
	if err != nil {
		c.stage = StagePlanReady
		c.errMsg = err.Error()
		return err
	}
	c.stage = StagePlanReady
	c.weekPlan = weekPlan
	c.selected = make(map[plan.MealSlot]struct{})
	return nil
}

// ConfirmPlan runs plan-ready → generating-shopping → complete. A
// failure returns to plan-ready; the meal plan itself is never lost.
func (c *Controller) ConfirmPlan(ctx context.Context) error {
	c.mu.Lock()
	if c.stage != StagePlanReady || len(c.weekPlan) == 0 {
		c.mu.Unlock()
		return apperr.New(apperr.ValidationFailed, "no plan to confirm")
	}
	weekPlan := append([]plan.DayPlan(nil), c.weekPlan...)
	c.stage = StageGeneratingShopping
	c.errMsg = ""
	c.seq++
	id := c.seq
	c.mu.Unlock()

	trips, _, err := c.planner.GenerateShoppingList(ctx, weekPlan)

	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.seq {
		return nil
	}
	if err != nil {
		c.stage = StagePlanReady
		c.errMsg = err.Error()
		return err
	}
	c.stage = StageComplete
	c.shoppingTrips = trips
	return nil
}

// ToggleSlot flips the regeneration mark on one slot. Only meaningful
// while a plan is ready; no network call is made.
func (c *Controller) ToggleSlot(day schedule.Day, meal schedule.Meal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage != StagePlanReady {
		return
	}
	slot := plan.MealSlot{Day: day, Meal: meal}
	if _, ok := c.selected[slot]; ok {
		delete(c.selected, slot)
	} else {
		c.selected[slot] = struct{}{}
	}
}

// ClearSelection unmarks every slot.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = make(map[plan.MealSlot]struct{})
}

// ResetToPlanStage returns from complete to plan-ready, discarding the
// shopping trips so the plan can be edited and the list re-derived.
func (c *Controller) ResetToPlanStage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stage = StagePlanReady
	c.shoppingTrips = nil
	c.errMsg = ""
}

// Reset discards all in-memory results and returns to idle. Any
// in-flight completion is invalidated.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.stage = StageIdle
	c.weekPlan = nil
	c.shoppingTrips = nil
	c.selected = make(map[plan.MealSlot]struct{})
	c.errMsg = ""
}
