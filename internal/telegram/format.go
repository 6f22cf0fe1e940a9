package telegram

import (
	"fmt"
	"strings"

	"weekplanner/internal/plan"
	"weekplanner/internal/prompt"
	"weekplanner/internal/schedule"
)

func formatWeekPlan(weekPlan []plan.DayPlan) string {
	var sb strings.Builder
	sb.WriteString("📅 План питания на неделю\n")
	for _, day := range weekPlan {
		fmt.Fprintf(&sb, "\n%s\n", prompt.DayNames[day.Day])
		for _, meal := range schedule.MealsOrder {
			item := day.MealFor(meal)
			if item == nil {
				continue
			}
			fmt.Fprintf(&sb, "  %s: %s (%d мин, %d порц.)\n",
				prompt.MealNames[meal], item.Name, item.Time, item.Portions)
		}
	}
	return sb.String()
}

func formatShoppingTrips(trips []plan.ShoppingTrip) string {
	var sb strings.Builder
	sb.WriteString("🛒 Список покупок\n")
	for _, trip := range trips {
		fmt.Fprintf(&sb, "\n%s\n", trip.Label)
		for _, item := range trip.Items {
			fmt.Fprintf(&sb, "  • %s — %s\n", item.Name, item.Amount)
		}
	}
	return sb.String()
}
