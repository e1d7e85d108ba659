package generator

import (
	"strings"

	"mealbot/internal/models"
)

// Category - нормализованная метка категории рецепта
type Category string

const (
	CategoryBreakfast Category = "завтрак"
	CategoryLunch     Category = "обед"
	CategoryDinner    Category = "ужин"
	CategorySnack     Category = "перекус"
	CategorySalad     Category = "салат"
	CategoryDessert   Category = "десерт"
)

// categoryAliases сводит русские и английские подписи к одной метке
var categoryAliases = map[string]Category{
	"завтрак":   CategoryBreakfast,
	"завтраки":  CategoryBreakfast,
	"breakfast": CategoryBreakfast,
	"обед":      CategoryLunch,
	"lunch":     CategoryLunch,
	"ужин":      CategoryDinner,
	"dinner":    CategoryDinner,
	"перекус":   CategorySnack,
	"перекусы":  CategorySnack,
	"snack":     CategorySnack,
	"салат":     CategorySalad,
	"салаты":    CategorySalad,
	"salad":     CategorySalad,
	"десерт":    CategoryDessert,
	"десерты":   CategoryDessert,
	"dessert":   CategoryDessert,
}

// NormalizeCategory приводит свободную подпись к известной категории
func NormalizeCategory(raw string) (Category, bool) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(raw))]
	return c, ok
}

// allowedTypes - допустимые типы блюд для каждого приёма пищи
var allowedTypes = map[models.MealType][]models.RecipeType{
	models.MealBreakfast: {models.RecipeBreakfast, models.RecipeDessert},
	models.MealLunch:     {models.RecipeMain, models.RecipeSalad},
	models.MealDinner:    {models.RecipeMain, models.RecipeSalad},
	models.MealSnack:     {models.RecipeSnack, models.RecipeSalad, models.RecipeDessert},
}

// categoryRule - таблица допуска категорий для приёма пищи.
// Категория проходит, если она есть в allow и отсутствует в deny.
type categoryRule struct {
	allow []Category
	deny  []Category
}

var categoryRules = map[models.MealType]categoryRule{
	models.MealBreakfast: {
		allow: []Category{CategoryBreakfast, CategoryDessert},
		deny:  []Category{CategoryLunch, CategoryDinner},
	},
	// Обед принимает и "ужинные" блюда, ужин обеденные - нет
	models.MealLunch: {
		allow: []Category{CategoryLunch, CategoryDinner, CategorySalad},
	},
	models.MealDinner: {
		allow: []Category{CategoryDinner, CategorySalad},
		deny:  []Category{CategoryLunch},
	},
	models.MealSnack: {
		allow: []Category{CategorySnack, CategorySalad, CategoryDessert},
	},
}

// TypeAllowed проверяет тип блюда по списку для приёма пищи
func TypeAllowed(mealType models.MealType, t models.RecipeType) bool {
	return containsType(allowedTypes[mealType.Kind()], t)
}

// CategoryAllowed проверяет категорию рецепта. Пустая категория допустима всегда,
// неизвестная - никогда.
func CategoryAllowed(mealType models.MealType, raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	c, ok := NormalizeCategory(raw)
	if !ok {
		return false
	}
	rule, ok := categoryRules[mealType.Kind()]
	if !ok {
		return false
	}
	return containsCategory(rule.allow, c) && !containsCategory(rule.deny, c)
}

// FilterRecipes оставляет рецепты, допустимые для приёма пищи.
// Пустой результат - не ошибка: вызывающий код просто не строит слот.
func FilterRecipes(recipes []models.Recipe, mealType models.MealType) []models.Recipe {
	var filtered []models.Recipe
	for _, r := range recipes {
		if !TypeAllowed(mealType, r.Type) {
			continue
		}
		if !CategoryAllowed(mealType, r.Category) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func containsType(list []models.RecipeType, t models.RecipeType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

func containsCategory(list []Category, c Category) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}
