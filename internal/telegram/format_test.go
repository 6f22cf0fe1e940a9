package telegram

import (
	"strings"
	"testing"

	"weekplanner/internal/plan"
	"weekplanner/internal/schedule"
)

func TestFormatWeekPlan(t *testing.T) {
	week := []plan.DayPlan{{
		Day:       schedule.Mon,
		Breakfast: &plan.MealItem{Name: "Омлет", Time: 15, Portions: 2},
		Dinner:    &plan.MealItem{Name: "Паста", Time: 30, Portions: 2},
	}}

	out := formatWeekPlan(week)
	if !strings.Contains(out, "Понедельник") {
		t.Error("day title missing")
	}
	if !strings.Contains(out, "Завтрак: Омлет (15 мин, 2 порц.)") {
		t.Error("breakfast line missing")
	}
	if strings.Contains(out, "Обед") {
		t.Error("nil lunch rendered")
	}
}

func TestFormatShoppingTrips(t *testing.T) {
	trips := []plan.ShoppingTrip{{
		Label: "Закупка 1 (Пн-Чт)",
		Items: []plan.ShoppingItem{{Name: "Яйца", Amount: "10 шт", Category: plan.CategoryDairy}},
	}}

	out := formatShoppingTrips(trips)
	if !strings.Contains(out, "Закупка 1 (Пн-Чт)") {
		t.Error("trip label missing")
	}
	if !strings.Contains(out, "• Яйца — 10 шт") {
		t.Error("item line missing")
	}
}
