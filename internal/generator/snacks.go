package generator

import (
	"math"

	"go.uber.org/zap"

	"mealbot/internal/models"
)

// Пороги решения о перекусах
const (
	immaterialCalories = 250.0 // остаток ккал, который можно не добирать
	immaterialProtein  = 20.0  // остаток белка, г
	minSnackCalories   = 150.0
	minSnackProtein    = 10.0
)

// snackTarget делит оставшийся дефицит на число свободных слотов
// с нижними границами, чтобы не было микроперекусов
func snackTarget(remaining models.Nutrients, slotsLeft int) models.Nutrients {
	if slotsLeft < 1 {
		slotsLeft = 1
	}
	t := remaining.ClampZero().Scale(1 / float64(slotsLeft))
	t.Calories = math.Max(t.Calories, minSnackCalories)
	t.Protein = math.Max(t.Protein, minSnackProtein)
	return t
}

// deficitImmaterial - остаток дня можно не закрывать перекусами
func deficitImmaterial(remaining models.Nutrients) bool {
	return remaining.Calories <= immaterialCalories && remaining.Protein <= immaterialProtein
}

// buildSnacks добавляет перекусы, пока дефицит дня существенный и есть
// свободные слоты. Если перекус собрать не из чего, день остаётся неполным.
func (g *Generator) buildSnacks(day *models.DayPlan, recipes []models.Recipe) {
	maxSnacks := models.MaxMealsPerDay - len(day.Meals)
	used := make(map[string]bool)

	for i := 0; i < maxSnacks; i++ {
		remaining := day.Target.Sub(day.Actual)
		if deficitImmaterial(remaining) {
			return
		}

		n := i + 1
		target := snackTarget(remaining, maxSnacks-i)
		slot, ok := g.buildSlot(recipes, models.SnackMeal(n), target, models.SlotFiller, used)
		if !ok {
			g.logger.Info("перекус не добавлен, день остаётся неполным",
				zap.Int("day", day.Day),
				zap.Float64("remaining_kcal", remaining.Calories),
				zap.Float64("remaining_protein", remaining.Protein),
			)
			return
		}

		for _, d := range slot.Dishes {
			used[d.Recipe.ID] = true
		}
		day.Meals = append(day.Meals, slot)
		day.Actual = day.Actual.Add(slot.Actual)
	}
}
