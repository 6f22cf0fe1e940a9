package plan

import (
	"encoding/json"
	"fmt"
	"time"

	"weekplanner/internal/schedule"
)

// Result is the accepted output of a full generation round: the week
// plan plus the derived shopping trips.
type Result struct {
	WeekPlan      []DayPlan      `json:"weekPlan"`
	ShoppingTrips []ShoppingTrip `json:"shoppingTrips"`
}

// Validate checks both halves of the result.
func (r Result) Validate() error {
	if err := ValidateWeekPlan(r.WeekPlan); err != nil {
		return err
	}
	return ValidateTrips(r.ShoppingTrips)
}

// PersistedPlan is a saved plan. Created once on confirmation and never
// partially updated: a re-save replaces the whole record.
type PersistedPlan struct {
	WeekKey    string            `json:"weekKey"`
	CreatedAt  time.Time         `json:"createdAt"`
	InputState schedule.AppState `json:"inputState"`
	Result     Result            `json:"result"`
}

// Validate checks the structural invariants of a persisted plan.
func (p PersistedPlan) Validate() error {
	if p.WeekKey == "" {
		return fmt.Errorf("missing week key")
	}
	if err := p.InputState.Validate(); err != nil {
		return fmt.Errorf("input state: %w", err)
	}
	if err := p.Result.Validate(); err != nil {
		return fmt.Errorf("result: %w", err)
	}
	return nil
}

// ParsePersistedPlan decodes stored bytes and validates them against
// the expected shape. A decode or validation failure means the stored
// record is corrupt, not that the plan is absent.
func ParsePersistedPlan(data []byte) (*PersistedPlan, error) {
	var p PersistedPlan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding persisted plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid persisted plan: %w", err)
	}
	return &p, nil
}

// ListItem is the display form of one saved week. It is derived from
// the week key alone and never persisted.
type ListItem struct {
	WeekKey    string `json:"weekKey"`
	WeekNumber int    `json:"weekNumber"`
	Year       int    `json:"year"`
	DateRange  string `json:"dateRange"`
}
