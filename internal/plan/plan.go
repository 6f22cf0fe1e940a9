package plan

import (
	"encoding/json"
	"fmt"

	"weekplanner/internal/schedule"
)

// MealItem is a single generated dish.
type MealItem struct {
	Name     string `json:"name"`
	Time     int    `json:"time"` // preparation, minutes
	Portions int    `json:"portions"`
}

// DayPlan is one day of the generated plan. A nil meal means the slot
// was deliberately empty (nobody eats), not an omission.
type DayPlan struct {
	Day       schedule.Day `json:"day"`
	Breakfast *MealItem    `json:"breakfast"`
	Lunch     *MealItem    `json:"lunch"`
	Dinner    *MealItem    `json:"dinner"`
}

// MealFor returns the item in the given slot, which may be nil.
func (d DayPlan) MealFor(m schedule.Meal) *MealItem {
	switch m {
	case schedule.Breakfast:
		return d.Breakfast
	case schedule.Lunch:
		return d.Lunch
	default:
		return d.Dinner
	}
}

// MealSlot identifies one (day, meal) cell for selective regeneration.
// Equality is structural, so it can be used as a map key.
type MealSlot struct {
	Day  schedule.Day  `json:"day"`
	Meal schedule.Meal `json:"meal"`
}

// Validate checks that the slot identifies a real cell.
func (s MealSlot) Validate() error {
	if !schedule.IsValidDay(s.Day) {
		return fmt.Errorf("invalid day %q", s.Day)
	}
	if !schedule.IsValidMeal(s.Meal) {
		return fmt.Errorf("invalid meal %q", s.Meal)
	}
	return nil
}

// ValidateWeekPlan checks the structural invariants of a week plan:
// exactly seven days in canonical order, every present meal with a
// non-empty name, non-negative time and positive portions.
func ValidateWeekPlan(week []DayPlan) error {
	if len(week) != len(schedule.DaysOrder) {
		return fmt.Errorf("week plan has %d days, want %d", len(week), len(schedule.DaysOrder))
	}
	for i, dp := range week {
		if dp.Day != schedule.DaysOrder[i] {
			return fmt.Errorf("day %d is %q, want %q", i, dp.Day, schedule.DaysOrder[i])
		}
		for _, m := range schedule.MealsOrder {
			item := dp.MealFor(m)
			if item == nil {
				continue
			}
			if item.Name == "" {
				return fmt.Errorf("%s/%s: empty meal name", dp.Day, m)
			}
			if item.Time < 0 {
				return fmt.Errorf("%s/%s: negative time %d", dp.Day, m, item.Time)
			}
			if item.Portions <= 0 {
				return fmt.Errorf("%s/%s: non-positive portions %d", dp.Day, m, item.Portions)
			}
		}
	}
	return nil
}

// MealNames returns the names of all non-nil meals in week order. Used
// to tell the generator which dishes last week already had.
func MealNames(week []DayPlan) []string {
	var names []string
	for _, dp := range week {
		for _, m := range schedule.MealsOrder {
			if item := dp.MealFor(m); item != nil {
				names = append(names, item.Name)
			}
		}
	}
	return names
}

// PlanResponse is the generator's answer to a plan request.
type PlanResponse struct {
	WeekPlan []DayPlan `json:"weekPlan"`
}

// ShoppingResponse is the generator's answer to a shopping-list request.
type ShoppingResponse struct {
	ShoppingTrips []ShoppingTrip `json:"shoppingTrips"`
}

// ParsePlanResponse decodes and structurally validates a generated plan.
func ParsePlanResponse(data []byte) (*PlanResponse, error) {
	var resp PlanResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding plan response: %w", err)
	}
	if err := ValidateWeekPlan(resp.WeekPlan); err != nil {
		return nil, fmt.Errorf("invalid plan response: %w", err)
	}
	return &resp, nil
}

// ParseShoppingResponse decodes and validates a generated shopping list.
func ParseShoppingResponse(data []byte) (*ShoppingResponse, error) {
	var resp ShoppingResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding shopping response: %w", err)
	}
	if err := ValidateTrips(resp.ShoppingTrips); err != nil {
		return nil, fmt.Errorf("invalid shopping response: %w", err)
	}
	return &resp, nil
}
