package schedule

import "strings"

// StatusLabels are the Russian labels used in prompts and slot
// descriptions.
var StatusLabels = map[SlotStatus]string{
	StatusFull:   "готовим",
	StatusCoffee: "легкий",
	StatusSoup:   "суп",
	StatusSkip:   "пропуск",
}

// PersonNames are the display names of the household members.
var PersonNames = map[Person]string{
	Vitalik: "Виталик",
	Lena:    "Лена",
}

// SlotInfo describes one (day, meal) cell of the combined schedule.
type SlotInfo struct {
	Day         Day
	Meal        Meal
	Portions    int
	Description string
}

// ResolveSlot derives the portion count and the human-readable
// description for one meal slot from both members' statuses. Everyone
// whose status is not skip counts toward portions. The function is pure:
// identical input always yields identical output.
func ResolveSlot(state AppState, day Day, meal Meal) SlotInfo {
	statuses := make([]SlotStatus, len(People))
	portions := 0
	for i, p := range People {
		st := state.Schedules.For(p).DayFor(day).Status(meal)
		statuses[i] = st
		if st != StatusSkip {
			portions++
		}
	}

	var description string
	switch {
	case portions == 0:
		description = "пропуск (никто не ест)"
	case allEqual(statuses):
		switch statuses[0] {
		case StatusCoffee:
			description = "легкий (оба)"
		case StatusSoup:
			description = "суп (оба)"
		default:
			description = StatusLabels[statuses[0]]
		}
	default:
		parts := make([]string, 0, len(People))
		for i, p := range People {
			parts = append(parts, PersonNames[p]+": "+StatusLabels[statuses[i]])
		}
		description = strings.Join(parts, ", ")
	}

	return SlotInfo{Day: day, Meal: meal, Portions: portions, Description: description}
}

func allEqual(statuses []SlotStatus) bool {
	for _, s := range statuses[1:] {
		if s != statuses[0] {
			return false
		}
	}
	return true
}
