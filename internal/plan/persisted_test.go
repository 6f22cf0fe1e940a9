package plan

import (
	"encoding/json"
	"testing"
	"time"

	"weekplanner/internal/schedule"
)

func validPersisted() PersistedPlan {
	return PersistedPlan{
		WeekKey:    "2026-36",
		CreatedAt:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		InputState: schedule.DefaultAppState(),
		Result: Result{
			WeekPlan:      validWeek(),
			ShoppingTrips: sampleTrips(),
		},
	}
}

func TestParsePersistedPlan(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		data, err := json.Marshal(validPersisted())
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		p, err := ParsePersistedPlan(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.WeekKey != "2026-36" {
			t.Errorf("weekKey = %q", p.WeekKey)
		}
		if len(p.Result.ShoppingTrips) != 2 {
			t.Errorf("got %d trips, want 2", len(p.Result.ShoppingTrips))
		}
	})

	t.Run("corrupt bytes are an error, not an absent plan", func(t *testing.T) {
		if _, err := ParsePersistedPlan([]byte(`{"weekKey":`)); err == nil {
			t.Fatal("expected decode error")
		}
	})

	t.Run("decodable but invalid record is rejected", func(t *testing.T) {
		p := validPersisted()
		p.WeekKey = ""
		data, _ := json.Marshal(p)
		if _, err := ParsePersistedPlan(data); err == nil {
			t.Fatal("expected validation error")
		}
	})
}

func TestPersistedPlanValidate(t *testing.T) {
	t.Run("invalid input state", func(t *testing.T) {
		p := validPersisted()
		p.InputState.SelectedCuisines = nil
		if err := p.Validate(); err == nil {
			t.Fatal("expected error for invalid input state")
		}
	})

	t.Run("invalid result", func(t *testing.T) {
		p := validPersisted()
		p.Result.WeekPlan = p.Result.WeekPlan[:3]
		if err := p.Validate(); err == nil {
			t.Fatal("expected error for truncated week plan")
		}
	})
}
