package schedule

// AvailableCuisines is the fixed catalog shown for selection.
var AvailableCuisines = []string{
	"eastern-european",
	"asian",
	"mexican",
	"american",
	"italian",
	"mediterranean",
	"japanese",
	"thai",
	"georgian",
	"scandinavian",
}

// DefaultSelectedCuisines is the pre-selected set on a fresh state.
var DefaultSelectedCuisines = []string{
	"eastern-european",
	"asian",
	"mexican",
	"american",
}

// IsValidCuisine reports whether id is in the catalog.
func IsValidCuisine(id string) bool {
	for _, c := range AvailableCuisines {
		if c == id {
			return true
		}
	}
	return false
}

var (
	defaultWeekday = DaySchedule{Breakfast: StatusFull, Lunch: StatusSkip, Dinner: StatusFull}
	defaultWeekend = DaySchedule{Breakfast: StatusFull, Lunch: StatusFull, Dinner: StatusFull}
)

// DefaultWeekSchedule returns the default schedule: weekday lunches
// skipped, weekends fully at home.
func DefaultWeekSchedule() WeekSchedule {
	return WeekSchedule{
		Mon: defaultWeekday,
		Tue: defaultWeekday,
		Wed: defaultWeekday,
		Thu: defaultWeekday,
		Fri: defaultWeekday,
		Sat: defaultWeekend,
		Sun: defaultWeekend,
	}
}

// DefaultAppState returns a ready-to-generate state with default
// schedules and cuisines.
func DefaultAppState() AppState {
	return AppState{
		Schedules: Schedules{
			Vitalik: DefaultWeekSchedule(),
			Lena:    DefaultWeekSchedule(),
		},
		SelectedCuisines: append([]string(nil), DefaultSelectedCuisines...),
	}
}
