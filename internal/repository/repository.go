package repository

import (
	"database/sql"
	"errors"
)

// ErrNotFound - запись не найдена
var ErrNotFound = errors.New("запись не найдена")

// Repository содержит все репозитории
type Repository struct {
	Recipe       *RecipeRepository
	MealPlan     *MealPlanRepository
	Subscription *SubscriptionRepository
}

// New создаёт новый экземпляр Repository
func New(db *sql.DB) *Repository {
	return &Repository{
		Recipe:       NewRecipeRepository(db),
		MealPlan:     NewMealPlanRepository(db),
		Subscription: NewSubscriptionRepository(db),
	}
}

// notFound переводит sql.ErrNoRows в ErrNotFound
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
