package schedule

import "testing"

// stateWith sets one slot for each person on Monday breakfast and
// returns a state that is otherwise all default.
func stateWith(vitalik, lena SlotStatus) AppState {
	state := DefaultAppState()
	state.Schedules.Vitalik = state.Schedules.Vitalik.SetStatus(Mon, Breakfast, vitalik)
	state.Schedules.Lena = state.Schedules.Lena.SetStatus(Mon, Breakfast, lena)
	return state
}

func TestResolveSlot(t *testing.T) {
	tests := []struct {
		name            string
		vitalik, lena   SlotStatus
		wantPortions    int
		wantDescription string
	}{
		{"both cooking", StatusFull, StatusFull, 2, "готовим"},
		{"both light", StatusCoffee, StatusCoffee, 2, "легкий (оба)"},
		{"both soup", StatusSoup, StatusSoup, 2, "суп (оба)"},
		{"both skip", StatusSkip, StatusSkip, 0, "пропуск (никто не ест)"},
		{"one eats one skips", StatusFull, StatusSkip, 1, "Виталик: готовим, Лена: пропуск"},
		{"skip still named in mixed pair", StatusSkip, StatusSoup, 1, "Виталик: пропуск, Лена: суп"},
		{"mixed cooking and light", StatusFull, StatusCoffee, 2, "Виталик: готовим, Лена: легкий"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ResolveSlot(stateWith(tt.vitalik, tt.lena), Mon, Breakfast)
			if info.Portions != tt.wantPortions {
				t.Errorf("portions = %d, want %d", info.Portions, tt.wantPortions)
			}
			if info.Description != tt.wantDescription {
				t.Errorf("description = %q, want %q", info.Description, tt.wantDescription)
			}
			if info.Day != Mon || info.Meal != Breakfast {
				t.Errorf("slot identity = %s/%s, want mon/breakfast", info.Day, info.Meal)
			}
		})
	}
}

func TestResolveSlotIsPure(t *testing.T) {
	state := stateWith(StatusFull, StatusSoup)
	first := ResolveSlot(state, Mon, Breakfast)
	for i := 0; i < 3; i++ {
		if got := ResolveSlot(state, Mon, Breakfast); got != first {
			t.Fatalf("call %d returned %+v, first call returned %+v", i+2, got, first)
		}
	}
}
