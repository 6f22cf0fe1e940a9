// Package prompt deterministically encodes the structured weekly
// schedule into the three natural-language generation requests: full
// plan, selective regeneration, shopping list. Builders are pure
// functions of their inputs and never touch the network.
package prompt

import (
	"fmt"
	"strings"

	"weekplanner/internal/plan"
	"weekplanner/internal/schedule"
)

func roleSection() string {
	return fmt.Sprintf(`РОЛЬ
Ты — планировщик питания для семьи из %d человек в Финляндии.`, len(schedule.People))
}

// scheduleSection renders the 7×3 grid. A zero-portion slot is an
// explicit "null": a silently missing slot would be indistinguishable
// from an omission bug on the generator's side.
func scheduleSection(state schedule.AppState) string {
	var lines []string
	for _, day := range schedule.DaysOrder {
		var meals []string
		for _, meal := range schedule.MealsOrder {
			info := schedule.ResolveSlot(state, day, meal)
			if info.Portions > 0 {
				meals = append(meals, fmt.Sprintf("%s: %d порц. (%s)", MealNames[meal], info.Portions, info.Description))
			} else {
				meals = append(meals, fmt.Sprintf("%s: null", MealNames[meal]))
			}
		}
		lines = append(lines, fmt.Sprintf("%s: %s", DayNames[day], strings.Join(meals, ", ")))
	}

	return fmt.Sprintf(`СТРУКТУРА ПИТАНИЯ
Расписание на неделю:
%s

Правила:
- Если указано "null" — блюдо не нужно, поставь null в ответе
- Если "легкий" — простое быстрое блюдо (бутерброд, омлет, каша)
- Если "суп" — суп или другое лёгкое жидкое блюдо
- Количество порций указано для каждого приёма`, strings.Join(lines, "\n"))
}

func cuisinesSection(state schedule.AppState) string {
	names := make([]string, 0, len(state.SelectedCuisines))
	for _, id := range state.SelectedCuisines {
		if name, ok := CuisineNames[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, id)
		}
	}
	return fmt.Sprintf(`КУХНИ
Выбранные: %s
Исключённые: %s`, strings.Join(names, ", "), strings.Join(ExcludedCuisines, ", "))
}

func restrictionsSection() string {
	return fmt.Sprintf(`ОГРАНИЧЕНИЯ ПО ПРОДУКТАМ
- Свинина: %s
- Говядина: %s
- Рыба: %s
- Запрещённые: %s`, MeatRules.Pork, MeatRules.Beef, MeatRules.Fish, strings.Join(BannedIngredients, ", "))
}

func cookingTimeSection() string {
	return fmt.Sprintf(`ВРЕМЯ ПРИГОТОВЛЕНИЯ
- Оптимально: %d мин
- Максимум: %d мин`, CookingTime.Optimal, CookingTime.Max)
}

// specialConditionsSection returns "" when the trimmed text is empty so
// the caller can omit the block entirely.
func specialConditionsSection(state schedule.AppState) string {
	text := strings.TrimSpace(state.SpecialConditions)
	if text == "" {
		return ""
	}
	return "ОСОБЫЕ УСЛОВИЯ ЭТОЙ НЕДЕЛИ\n" + text
}

// previousMealsSection returns "" when there is nothing to avoid.
func previousMealsSection(previousMeals []string) string {
	if len(previousMeals) == 0 {
		return ""
	}
	return fmt.Sprintf(`БЛЮДА ПРОШЛОЙ НЕДЕЛИ
Не повторяй эти блюда:
%s`, strings.Join(previousMeals, ", "))
}

func planOutputFormat() string {
	return `ФОРМАТ ВЫВОДА
JSON-объект:
{
  "weekPlan": [
    {
      "day": "mon",
      "breakfast": { "name": "Название блюда", "time": 15, "portions": 2 } | null,
      "lunch": { "name": "...", "time": 30, "portions": 2 } | null,
      "dinner": { "name": "...", "time": 45, "portions": 2 } | null
    },
    ...для всех 7 дней
  ]
}

ВАЖНО:
- Все названия блюд — на русском языке
- Дни в порядке: mon, tue, wed, thu, fri, sat, sun
- time — время приготовления в минутах
- Не повторяй блюда в течение недели
- Разнообразие: чередуй кухни и типы блюд`
}

// BuildMealPlanPrompt builds the full-plan generation request.
// previousMeals may be nil.
func BuildMealPlanPrompt(state schedule.AppState, previousMeals []string) string {
	sections := []string{
		roleSection(),
		scheduleSection(state),
		cuisinesSection(state),
		restrictionsSection(),
		cookingTimeSection(),
	}
	if s := specialConditionsSection(state); s != "" {
		sections = append(sections, s)
	}
	if s := previousMealsSection(previousMeals); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, planOutputFormat())
	return strings.Join(sections, "\n\n")
}

// BuildPartialRegenerationPrompt builds the selective-regeneration
// request: the current plan with replacement markers on exactly the
// selected slots, the explicit replacement list with portions per slot,
// and an output format demanding the full week back with untouched
// slots echoed verbatim.
func BuildPartialRegenerationPrompt(
	state schedule.AppState,
	currentPlan []plan.DayPlan,
	slotsToRegenerate []plan.MealSlot,
	previousMeals []string,
) string {
	marked := make(map[plan.MealSlot]bool, len(slotsToRegenerate))
	for _, s := range slotsToRegenerate {
		marked[s] = true
	}

	sections := []string{fmt.Sprintf(`РОЛЬ
Ты — планировщик питания для семьи из %d человек в Финляндии.
Тебе нужно ЗАМЕНИТЬ только указанные блюда, сохранив остальные.`, len(schedule.People))}

	// Current plan with markers.
	var planLines []string
	for _, dayPlan := range currentPlan {
		var meals []string
		for _, meal := range schedule.MealsOrder {
			item := dayPlan.MealFor(meal)
			if item == nil {
				meals = append(meals, fmt.Sprintf("%s: null", MealNames[meal]))
				continue
			}
			marker := ""
			if marked[plan.MealSlot{Day: dayPlan.Day, Meal: meal}] {
				marker = regenerateMarker
			}
			meals = append(meals, fmt.Sprintf("%s: %s%s", MealNames[meal], item.Name, marker))
		}
		planLines = append(planLines, fmt.Sprintf("%s: %s", DayNames[dayPlan.Day], strings.Join(meals, ", ")))
	}
	sections = append(sections, fmt.Sprintf(`ТЕКУЩИЙ ПЛАН (блюда помеченные "ЗАМЕНИТЬ" нужно заменить на новые)
%s`, strings.Join(planLines, "\n")))

	// Explicit replacement list, each slot re-annotated with its
	// portions and description.
	var slotLines []string
	for _, s := range slotsToRegenerate {
		info := schedule.ResolveSlot(state, s.Day, s.Meal)
		slotLines = append(slotLines, fmt.Sprintf("%s — %s (%d порц., %s)",
			DayNames[s.Day], MealNames[s.Meal], info.Portions, info.Description))
	}
	sections = append(sections, fmt.Sprintf(`СЛОТЫ ДЛЯ ЗАМЕНЫ
%s`, strings.Join(slotLines, "\n")))

	sections = append(sections,
		cuisinesSection(state),
		restrictionsSection(),
		cookingTimeSection(),
	)
	if s := specialConditionsSection(state); s != "" {
		sections = append(sections, s)
	}
	if s := previousMealsSection(previousMeals); s != "" {
		sections = append(sections, s)
	}

	sections = append(sections, `ФОРМАТ ВЫВОДА
JSON-объект с ПОЛНЫМ планом на неделю (все 7 дней):
{
  "weekPlan": [
    {
      "day": "mon",
      "breakfast": { "name": "Название блюда", "time": 15, "portions": 2 } | null,
      "lunch": { "name": "...", "time": 30, "portions": 2 } | null,
      "dinner": { "name": "...", "time": 45, "portions": 2 } | null
    },
    ...для всех 7 дней
  ]
}

ВАЖНО:
- Верни ПОЛНЫЙ план на неделю (все 7 дней)
- Для слотов НЕ помеченных "ЗАМЕНИТЬ" — верни ТОЧНО ТЕ ЖЕ блюда что сейчас
- Для слотов помеченных "ЗАМЕНИТЬ" — придумай НОВЫЕ блюда
- Новые блюда должны отличаться от текущих в плане
- Все названия блюд — на русском языке
- Дни в порядке: mon, tue, wed, thu, fri, sat, sun`)

	return strings.Join(sections, "\n\n")
}

// BuildShoppingListPrompt builds the shopping-list request from a
// confirmed week plan. Only non-nil meals are rendered; a day with no
// meals is omitted.
func BuildShoppingListPrompt(weekPlan []plan.DayPlan) string {
	sections := []string{`ЗАДАЧА
Составь список покупок для следующего плана питания на неделю.`}

	var planLines []string
	for _, dayPlan := range weekPlan {
		var meals []string
		for _, meal := range schedule.MealsOrder {
			if item := dayPlan.MealFor(meal); item != nil {
				meals = append(meals, fmt.Sprintf("%s — %s (%d мин, %d порц.)",
					MealNames[meal], item.Name, item.Time, item.Portions))
			}
		}
		if len(meals) > 0 {
			planLines = append(planLines, fmt.Sprintf("%s: %s", DayNames[dayPlan.Day], strings.Join(meals, "; ")))
		}
	}
	sections = append(sections, fmt.Sprintf(`ПЛАН ПИТАНИЯ
%s`, strings.Join(planLines, "\n")))

	sections = append(sections, `ФОРМАТ ВЫВОДА
JSON-объект:
{
  "shoppingTrips": [
    {
      "label": "Закупка 1 (Пн-Чт)",
      "items": [
        { "name": "Яйца", "amount": "10 шт", "category": "dairy" },
        { "name": "Куриное филе", "amount": "600 г", "category": "meat" },
        ...
      ]
    },
    {
      "label": "Закупка 2 (Пт-Вс)",
      "items": [...]
    }
  ]
}

КАТЕГОРИИ (обязательно использовать эти ID):
- dairy — молочные продукты (яйца, молоко, сыр, йогурт, сметана, творог)
- meat — мясо и рыба
- produce — овощи и фрукты
- pantry — бакалея (крупы, макароны, консервы, соусы в банках)
- frozen — заморозка
- bakery — хлеб и выпечка
- condiments — соусы и приправы

ПРАВИЛА:
- Объединяй одинаковые ингредиенты (суммируй количество)
- НЕ включай базовые продукты: соль, перец, растительное масло, сахар
- Раздели на 2 закупки: начало недели (Пн-Чт) и конец недели (Пт-Вс)
- Все названия — на русском языке`)

	return strings.Join(sections, "\n\n")
}
