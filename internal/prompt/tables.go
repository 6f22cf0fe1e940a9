package prompt

import "weekplanner/internal/schedule"

// Display names used when rendering prompts. The whole prompt surface
// is Russian; the generator is instructed to answer in kind.

// DayNames maps day identifiers to Russian display names.
var DayNames = map[schedule.Day]string{
	schedule.Mon: "Понедельник",
	schedule.Tue: "Вторник",
	schedule.Wed: "Среда",
	schedule.Thu: "Четверг",
	schedule.Fri: "Пятница",
	schedule.Sat: "Суббота",
	schedule.Sun: "Воскресенье",
}

// MealNames maps meal identifiers to Russian display names.
var MealNames = map[schedule.Meal]string{
	schedule.Breakfast: "Завтрак",
	schedule.Lunch:     "Обед",
	schedule.Dinner:    "Ужин",
}

// CuisineNames maps cuisine identifiers to their Russian display names.
var CuisineNames = map[string]string{
	"eastern-european": "Восточно-европейская",
	"asian":            "Азиатская",
	"mexican":          "Мексиканская",
	"american":         "Американская",
	"italian":          "Итальянская",
	"mediterranean":    "Средиземноморская",
	"japanese":         "Японская",
	"thai":             "Тайская",
	"georgian":         "Грузинская",
	"scandinavian":     "Скандинавская",
}

// ExcludedCuisines are hard-excluded and never shown for selection.
var ExcludedCuisines = []string{"Индийская", "Непальская"}

// BannedIngredients are dishes and ingredients the household refuses.
var BannedIngredients = []string{
	"Морковный крем-суп",
	"минестроне",
	"Гречка",
	"овсянка",
	"Чернослив",
	"курага",
	"сухофрукты",
	"Овощные запеканки",
	"Батат",
	"Чечевичные и фасолевые супы",
	"Каперсы",
}

// MeatRules constrain how often each protein may appear.
var MeatRules = struct {
	Pork string
	Beef string
	Fish string
}{
	Pork: "bacon only",
	Beef: "maximum once per week",
	Fish: "salmon/trout/tuna only, maximum once per week",
}

// CookingTime bounds per-dish preparation time in minutes.
var CookingTime = struct {
	Optimal int
	Max     int
}{
	Optimal: 30,
	Max:     60,
}

// regenerateMarker flags slots the generator must replace.
const regenerateMarker = " ⟵ ЗАМЕНИТЬ"
