package schedule

import "fmt"

// SlotStatus is the per-person state of one meal slot.
type SlotStatus string

const (
	StatusFull   SlotStatus = "full"   // cooking at home
	StatusCoffee SlotStatus = "coffee" // light snack
	StatusSoup   SlotStatus = "soup"   // soup or another light liquid meal
	StatusSkip   SlotStatus = "skip"   // no meal
)

// StatusCycle is the order statuses rotate through on a calendar click.
var StatusCycle = []SlotStatus{StatusFull, StatusCoffee, StatusSoup, StatusSkip}

// NextStatus returns the status after s in the click cycle.
func NextStatus(s SlotStatus) SlotStatus {
	for i, v := range StatusCycle {
		if v == s {
			return StatusCycle[(i+1)%len(StatusCycle)]
		}
	}
	return StatusFull
}

// IsValidStatus reports whether s is one of the four known statuses.
func IsValidStatus(s SlotStatus) bool {
	switch s {
	case StatusFull, StatusCoffee, StatusSoup, StatusSkip:
		return true
	}
	return false
}

// Day identifies a day of the week.
type Day string

const (
	Mon Day = "mon"
	Tue Day = "tue"
	Wed Day = "wed"
	Thu Day = "thu"
	Fri Day = "fri"
	Sat Day = "sat"
	Sun Day = "sun"
)

// DaysOrder is the canonical day order used everywhere.
var DaysOrder = []Day{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

// IsValidDay reports whether d is a known day identifier.
func IsValidDay(d Day) bool {
	for _, v := range DaysOrder {
		if v == d {
			return true
		}
	}
	return false
}

// Meal identifies one of the three daily meals.
type Meal string

const (
	Breakfast Meal = "breakfast"
	Lunch     Meal = "lunch"
	Dinner    Meal = "dinner"
)

// MealsOrder is the canonical meal order.
var MealsOrder = []Meal{Breakfast, Lunch, Dinner}

// IsValidMeal reports whether m is a known meal identifier.
func IsValidMeal(m Meal) bool {
	return m == Breakfast || m == Lunch || m == Dinner
}

// Person identifies one of the two household members.
type Person string

const (
	Vitalik Person = "vitalik"
	Lena    Person = "lena"
)

// People is the fixed member order used for portion counting and
// mixed-status descriptions.
var People = []Person{Vitalik, Lena}

// DaySchedule holds one person's statuses for a single day. All three
// slots are always present by construction.
type DaySchedule struct {
	Breakfast SlotStatus `json:"breakfast"`
	Lunch     SlotStatus `json:"lunch"`
	Dinner    SlotStatus `json:"dinner"`
}

// Status returns the status of the given meal slot.
func (d DaySchedule) Status(m Meal) SlotStatus {
	switch m {
	case Breakfast:
		return d.Breakfast
	case Lunch:
		return d.Lunch
	default:
		return d.Dinner
	}
}

// WeekSchedule holds one person's statuses for the whole week, one named
// field per day so that no slot can ever be absent.
type WeekSchedule struct {
	Mon DaySchedule `json:"mon"`
	Tue DaySchedule `json:"tue"`
	Wed DaySchedule `json:"wed"`
	Thu DaySchedule `json:"thu"`
	Fri DaySchedule `json:"fri"`
	Sat DaySchedule `json:"sat"`
	Sun DaySchedule `json:"sun"`
}

// DayFor returns the day schedule for d.
func (w WeekSchedule) DayFor(d Day) DaySchedule {
	switch d {
	case Mon:
		return w.Mon
	case Tue:
		return w.Tue
	case Wed:
		return w.Wed
	case Thu:
		return w.Thu
	case Fri:
		return w.Fri
	case Sat:
		return w.Sat
	default:
		return w.Sun
	}
}

// SetStatus returns a copy of w with the (day, meal) slot set to s.
func (w WeekSchedule) SetStatus(d Day, m Meal, s SlotStatus) WeekSchedule {
	ds := w.DayFor(d)
	switch m {
	case Breakfast:
		ds.Breakfast = s
	case Lunch:
		ds.Lunch = s
	case Dinner:
		ds.Dinner = s
	}
	switch d {
	case Mon:
		w.Mon = ds
	case Tue:
		w.Tue = ds
	case Wed:
		w.Wed = ds
	case Thu:
		w.Thu = ds
	case Fri:
		w.Fri = ds
	case Sat:
		w.Sat = ds
	case Sun:
		w.Sun = ds
	}
	return w
}

// Schedules holds the week schedules for both household members.
type Schedules struct {
	Vitalik WeekSchedule `json:"vitalik"`
	Lena    WeekSchedule `json:"lena"`
}

// For returns the week schedule of the given person.
func (s Schedules) For(p Person) WeekSchedule {
	if p == Lena {
		return s.Lena
	}
	return s.Vitalik
}

// AppState is the full input to plan generation.
type AppState struct {
	Schedules         Schedules `json:"schedules"`
	SelectedCuisines  []string  `json:"selectedCuisines"`
	SpecialConditions string    `json:"specialConditions"`
}

// Validate checks the structural invariants of the app state: every
// status well-formed, at least one cuisine selected, all cuisines from
// the catalog.
func (a AppState) Validate() error {
	for _, p := range People {
		ws := a.Schedules.For(p)
		for _, d := range DaysOrder {
			for _, m := range MealsOrder {
				if st := ws.DayFor(d).Status(m); !IsValidStatus(st) {
					return fmt.Errorf("invalid status %q for %s/%s/%s", st, p, d, m)
				}
			}
		}
	}
	if len(a.SelectedCuisines) == 0 {
		return fmt.Errorf("at least one cuisine must be selected")
	}
	for _, c := range a.SelectedCuisines {
		if !IsValidCuisine(c) {
			return fmt.Errorf("unknown cuisine %q", c)
		}
	}
	return nil
}
