package generator

import (
	"errors"
	"fmt"
	"strings"

	"mealbot/internal/models"
)

// ErrNoRecipes - в каталоге нет ни одного рецепта для обязательных приёмов пищи
var ErrNoRecipes = errors.New("нет доступных рецептов")

// ConfigurationError возвращается, когда план строить не из чего
type ConfigurationError struct {
	MealTypes []models.MealType
}

func (e *ConfigurationError) Error() string {
	names := make([]string, len(e.MealTypes))
	for i, m := range e.MealTypes {
		names[i] = string(m)
	}
	return fmt.Sprintf("%v: пустой каталог для %s", ErrNoRecipes, strings.Join(names, ", "))
}

func (e *ConfigurationError) Unwrap() error {
	return ErrNoRecipes
}

// ValidationError - ошибка входных параметров запроса
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}
