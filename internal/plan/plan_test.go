package plan

import (
	"strings"
	"testing"

	"weekplanner/internal/schedule"
)

func validWeek() []DayPlan {
	week := make([]DayPlan, 0, len(schedule.DaysOrder))
	for _, d := range schedule.DaysOrder {
		week = append(week, DayPlan{
			Day:       d,
			Breakfast: &MealItem{Name: "Омлет", Time: 15, Portions: 2},
			Lunch:     nil,
			Dinner:    &MealItem{Name: "Паста", Time: 30, Portions: 2},
		})
	}
	return week
}

func TestValidateWeekPlan(t *testing.T) {
	t.Run("accepts canonical week", func(t *testing.T) {
		if err := ValidateWeekPlan(validWeek()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects short week", func(t *testing.T) {
		if err := ValidateWeekPlan(validWeek()[:6]); err == nil {
			t.Fatal("expected error for six-day week")
		}
	})

	t.Run("rejects out-of-order days", func(t *testing.T) {
		week := validWeek()
		week[0], week[1] = week[1], week[0]
		if err := ValidateWeekPlan(week); err == nil {
			t.Fatal("expected error for swapped days")
		}
	})

	t.Run("rejects empty meal name", func(t *testing.T) {
		week := validWeek()
		week[3].Dinner = &MealItem{Name: "", Time: 30, Portions: 2}
		if err := ValidateWeekPlan(week); err == nil {
			t.Fatal("expected error for empty name")
		}
	})

	t.Run("rejects non-positive portions", func(t *testing.T) {
		week := validWeek()
		week[2].Breakfast = &MealItem{Name: "Каша", Time: 10, Portions: 0}
		if err := ValidateWeekPlan(week); err == nil {
			t.Fatal("expected error for zero portions")
		}
	})

	t.Run("nil meal is a deliberate gap", func(t *testing.T) {
		week := validWeek()
		week[5].Breakfast = nil
		if err := ValidateWeekPlan(week); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestMealSlotValidate(t *testing.T) {
	if err := (MealSlot{Day: schedule.Wed, Meal: schedule.Dinner}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (MealSlot{Day: "someday", Meal: schedule.Dinner}).Validate(); err == nil {
		t.Fatal("expected error for unknown day")
	}
	if err := (MealSlot{Day: schedule.Wed, Meal: "brunch"}).Validate(); err == nil {
		t.Fatal("expected error for unknown meal")
	}
}

func TestMealNames(t *testing.T) {
	names := MealNames(validWeek())
	if len(names) != 14 {
		t.Fatalf("got %d names, want 14", len(names))
	}
	if names[0] != "Омлет" || names[1] != "Паста" {
		t.Errorf("unexpected leading names %q", names[:2])
	}
}

func TestParsePlanResponse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		data := `{"weekPlan":[
			{"day":"mon","breakfast":{"name":"Омлет","time":15,"portions":2},"lunch":null,"dinner":{"name":"Суп","time":40,"portions":2}},
			{"day":"tue","breakfast":{"name":"Каша","time":10,"portions":2},"lunch":null,"dinner":{"name":"Паста","time":30,"portions":2}},
			{"day":"wed","breakfast":{"name":"Сырники","time":20,"portions":2},"lunch":null,"dinner":{"name":"Плов","time":60,"portions":2}},
			{"day":"thu","breakfast":{"name":"Тосты","time":10,"portions":2},"lunch":null,"dinner":{"name":"Рагу","time":45,"portions":2}},
			{"day":"fri","breakfast":{"name":"Блины","time":25,"portions":2},"lunch":null,"dinner":{"name":"Пицца","time":40,"portions":2}},
			{"day":"sat","breakfast":{"name":"Вафли","time":20,"portions":2},"lunch":{"name":"Борщ","time":60,"portions":2},"dinner":{"name":"Стейк","time":30,"portions":2}},
			{"day":"sun","breakfast":{"name":"Гранола","time":5,"portions":2},"lunch":{"name":"Рамен","time":45,"portions":2},"dinner":{"name":"Карри","time":35,"portions":2}}
		]}`
		resp, err := ParsePlanResponse([]byte(data))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.WeekPlan[5].Lunch == nil || resp.WeekPlan[5].Lunch.Name != "Борщ" {
			t.Errorf("sat lunch = %+v", resp.WeekPlan[5].Lunch)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := ParsePlanResponse([]byte(`{"weekPlan": [`)); err == nil {
			t.Fatal("expected decode error")
		}
	})

	t.Run("structurally invalid", func(t *testing.T) {
		_, err := ParsePlanResponse([]byte(`{"weekPlan":[{"day":"mon"}]}`))
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "invalid plan response") {
			t.Errorf("error %q does not mention invalid response", err)
		}
	})
}
