package bot

import (
	"fmt"
	"math"

	"mealbot/internal/generator"
	"mealbot/internal/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Верхние пределы дневной нормы
const (
	maxCalories = 10000
	maxProtein  = 500
	maxFat      = 400
	maxCarbs    = 1500
)

// validateCalories validates daily calories
func validateCalories(kcal float64) error {
	if !isFinite(kcal) {
		return ValidationError{Field: "calories", Message: "Калории должны быть числом"}
	}
	if kcal <= 0 {
		return ValidationError{Field: "calories", Message: "Калории должны быть положительным числом"}
	}
	if kcal > maxCalories {
		return ValidationError{Field: "calories", Message: fmt.Sprintf("Слишком много калорий (максимум %d)", maxCalories)}
	}
	return nil
}

// validateMacro validates a macro nutrient in grams
func validateMacro(field, name string, grams, max float64) error {
	if !isFinite(grams) {
		return ValidationError{Field: field, Message: name + " должны быть числом"}
	}
	if grams < 0 {
		return ValidationError{Field: field, Message: name + " не могут быть отрицательными"}
	}
	if grams > max {
		return ValidationError{Field: field, Message: fmt.Sprintf("%s: слишком много (максимум %.0f г)", name, max)}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validateTargets validates daily nutrient targets
func validateTargets(t models.Nutrients) error {
	if err := validateCalories(t.Calories); err != nil {
		return err
	}
	if err := validateMacro("protein", "Белки", t.Protein, maxProtein); err != nil {
		return err
	}
	if err := validateMacro("fat", "Жиры", t.Fat, maxFat); err != nil {
		return err
	}
	return validateMacro("carbs", "Углеводы", t.Carbs, maxCarbs)
}

// validateDays validates plan length
func validateDays(days int) error {
	if days < generator.MinDays {
		return ValidationError{Field: "days", Message: fmt.Sprintf("Минимум %d день", generator.MinDays)}
	}
	if days > generator.MaxDays {
		return ValidationError{Field: "days", Message: fmt.Sprintf("Максимум %d дней", generator.MaxDays)}
	}
	return nil
}
