package generator

import (
	"math"

	"mealbot/internal/models"
)

// mainTypes - типы блюд, которые могут быть основным блюдом приёма пищи
var mainTypes = map[models.MealType][]models.RecipeType{
	models.MealBreakfast: {models.RecipeBreakfast},
	models.MealLunch:     {models.RecipeMain},
	models.MealDinner:    {models.RecipeMain},
	models.MealSnack:     {models.RecipeSnack, models.RecipeDessert},
}

// mainCategories - категории основного блюда (пустая категория проходит)
var mainCategories = map[models.MealType][]Category{
	models.MealBreakfast: {CategoryBreakfast},
	models.MealLunch:     {CategoryLunch, CategoryDinner},
	models.MealDinner:    {CategoryDinner},
	models.MealSnack:     {CategorySnack, CategoryDessert},
}

const (
	proteinBoost      = 0.8  // множитель штрафа для белковых перекусов
	proteinRichPer100 = 5.0  // г белка на 100 ккал (20% энергии)
	sideDishThreshold = 0.90 // гарнир нужен, если основное блюдо даёт меньше 90% калорий
)

// isProteinRich - белок даёт не меньше 20% калорийности блюда
func isProteinRich(r models.Recipe) bool {
	if r.Calories <= 0 {
		return r.Protein > 0
	}
	return r.Protein/r.Calories*100 >= proteinRichPer100
}

// estimatePortions подбирает стартовое число порций под целевые калории
func estimatePortions(r models.Recipe, targetCalories float64) int {
	if r.Calories <= 0 || targetCalories <= 0 {
		return models.MinPortions
	}
	return clampPortions(int(math.Round(targetCalories / r.Calories)))
}

func clampPortions(p int) int {
	if p < models.MinPortions {
		return models.MinPortions
	}
	if p > models.MaxPortions {
		return models.MaxPortions
	}
	return p
}

// isMainCandidate проверяет правила основного блюда для приёма пищи
func isMainCandidate(r models.Recipe, mealType models.MealType) bool {
	kind := mealType.Kind()
	if !containsType(mainTypes[kind], r.Type) {
		return false
	}
	if r.Category == "" {
		return true
	}
	c, ok := NormalizeCategory(r.Category)
	return ok && containsCategory(mainCategories[kind], c)
}

// scoreCandidate оценивает рецепт при стартовом числе порций. Меньше - лучше.
func scoreCandidate(r models.Recipe, mealType models.MealType, target models.Nutrients) float64 {
	dish := models.SelectedDish{Recipe: r, Portions: estimatePortions(r, target.Calories)}
	score := Deviation(target, dish.CalcTotals())
	if mealType.Kind() == models.MealSnack && isProteinRich(r) {
		score *= proteinBoost
	}
	return score
}

// PickMain выбирает основное блюдо, ближайшее к цели.
// При равенстве оценок побеждает рецепт, встреченный раньше.
func PickMain(candidates []models.Recipe, mealType models.MealType, target models.Nutrients) (models.SelectedDish, bool) {
	var best *models.Recipe
	var bestScore float64

	for i := range candidates {
		r := &candidates[i]
		if !isMainCandidate(*r, mealType) {
			continue
		}
		score := scoreCandidate(*r, mealType, target)
		if best == nil || score < bestScore {
			best = r
			bestScore = score
		}
	}

	if best == nil {
		return models.SelectedDish{}, false
	}

	role := models.RoleMain
	if mealType.Kind() == models.MealSnack {
		role = models.RoleFiller
	}
	return models.SelectedDish{
		Recipe:   *best,
		Portions: estimatePortions(*best, target.Calories),
		Role:     role,
	}, true
}

// PickSide добавляет салат, если выбранные блюда не добирают 90% калорий.
// Салат оценивается по остатку цели и не повторяет уже выбранные рецепты.
func PickSide(candidates []models.Recipe, mealType models.MealType, target models.Nutrients, existing []models.SelectedDish) (models.SelectedDish, bool) {
	current := models.SumDishes(existing)
	if current.Calories >= target.Calories*sideDishThreshold {
		return models.SelectedDish{}, false
	}

	used := make(map[string]bool, len(existing))
	for _, d := range existing {
		used[d.Recipe.ID] = true
	}

	remaining := target.Sub(current).ClampZero()

	var best *models.Recipe
	var bestScore float64
	for i := range candidates {
		r := &candidates[i]
		if r.Type != models.RecipeSalad || used[r.ID] {
			continue
		}
		score := scoreCandidate(*r, mealType, remaining)
		if best == nil || score < bestScore {
			best = r
			bestScore = score
		}
	}

	if best == nil {
		return models.SelectedDish{}, false
	}

	role := models.RoleSide
	if mealType.Kind() == models.MealSnack {
		role = models.RoleFiller
	}
	return models.SelectedDish{
		Recipe:   *best,
		Portions: estimatePortions(*best, remaining.Calories),
		Role:     role,
	}, true
}
