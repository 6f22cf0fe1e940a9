package schedule

import "testing"

func TestNextStatusCycle(t *testing.T) {
	tests := []struct {
		in, want SlotStatus
	}{
		{StatusFull, StatusCoffee},
		{StatusCoffee, StatusSoup},
		{StatusSoup, StatusSkip},
		{StatusSkip, StatusFull},
		{"bogus", StatusFull},
	}
	for _, tt := range tests {
		if got := NextStatus(tt.in); got != tt.want {
			t.Errorf("NextStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	// Four clicks bring any slot back where it started.
	s := StatusSoup
	for i := 0; i < len(StatusCycle); i++ {
		s = NextStatus(s)
	}
	if s != StatusSoup {
		t.Errorf("full cycle ended at %q, want %q", s, StatusSoup)
	}
}

func TestSetStatusDoesNotMutateReceiver(t *testing.T) {
	orig := DefaultWeekSchedule()
	modified := orig.SetStatus(Tue, Lunch, StatusSoup)

	if got := modified.DayFor(Tue).Status(Lunch); got != StatusSoup {
		t.Errorf("modified tue/lunch = %q, want %q", got, StatusSoup)
	}
	if got := orig.DayFor(Tue).Status(Lunch); got != StatusSkip {
		t.Errorf("original tue/lunch changed to %q", got)
	}
}

func TestDefaultWeekSchedule(t *testing.T) {
	ws := DefaultWeekSchedule()

	for _, d := range []Day{Mon, Tue, Wed, Thu, Fri} {
		ds := ws.DayFor(d)
		if ds.Breakfast != StatusFull || ds.Lunch != StatusSkip || ds.Dinner != StatusFull {
			t.Errorf("weekday %s = %+v, want full/skip/full", d, ds)
		}
	}
	for _, d := range []Day{Sat, Sun} {
		ds := ws.DayFor(d)
		if ds.Breakfast != StatusFull || ds.Lunch != StatusFull || ds.Dinner != StatusFull {
			t.Errorf("weekend %s = %+v, want full/full/full", d, ds)
		}
	}
}

func TestAppStateValidate(t *testing.T) {
	t.Run("default state is valid", func(t *testing.T) {
		if err := DefaultAppState().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		state := DefaultAppState()
		ws := state.Schedules.Vitalik
		ws.Wed.Dinner = "brunch"
		state.Schedules.Vitalik = ws
		if err := state.Validate(); err == nil {
			t.Fatal("expected error for unknown status")
		}
	})

	t.Run("rejects empty cuisine selection", func(t *testing.T) {
		state := DefaultAppState()
		state.SelectedCuisines = nil
		if err := state.Validate(); err == nil {
			t.Fatal("expected error for empty cuisine selection")
		}
	})

	t.Run("rejects cuisine outside catalog", func(t *testing.T) {
		state := DefaultAppState()
		state.SelectedCuisines = append(state.SelectedCuisines, "klingon")
		if err := state.Validate(); err == nil {
			t.Fatal("expected error for unknown cuisine")
		}
	})
}

func TestDefaultAppStateCopiesCuisines(t *testing.T) {
	state := DefaultAppState()
	state.SelectedCuisines[0] = "italian"
	if DefaultSelectedCuisines[0] != "eastern-european" {
		t.Fatal("DefaultAppState shares the package-level cuisine slice")
	}
}
