package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mealbot/internal/models"
)

// RecipeRepository работает с каталогом рецептов
type RecipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository создаёт репозиторий рецептов
func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// ListForOwner возвращает системные рецепты и рецепты пользователя
func (r *RecipeRepository) ListForOwner(ctx context.Context, ownerID int64) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, COALESCE(category, ''), owner_id,
		       calories, protein, fat, carbs
		FROM public.recipes
		WHERE owner_id IS NULL OR owner_id = $1
		ORDER BY owner_id NULLS FIRST, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки рецептов: %w", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var rec models.Recipe
		var owner sql.NullInt64
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.Type, &rec.Category, &owner,
			&rec.Calories, &rec.Protein, &rec.Fat, &rec.Carbs,
		); err != nil {
			return nil, fmt.Errorf("ошибка чтения рецепта: %w", err)
		}
		if owner.Valid {
			id := owner.Int64
			rec.OwnerID = &id
		}
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}

// Create сохраняет рецепт. Существующий рецепт с тем же ID обновляется.
func (r *RecipeRepository) Create(ctx context.Context, rec models.Recipe) error {
	var owner sql.NullInt64
	if rec.OwnerID != nil {
		owner = sql.NullInt64{Int64: *rec.OwnerID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO public.recipes
		(id, name, type, category, owner_id, calories, protein, fat, carbs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, type = EXCLUDED.type, category = EXCLUDED.category,
			owner_id = EXCLUDED.owner_id, calories = EXCLUDED.calories,
			protein = EXCLUDED.protein, fat = EXCLUDED.fat, carbs = EXCLUDED.carbs`,
		rec.ID, rec.Name, rec.Type, rec.Category, owner,
		rec.Calories, rec.Protein, rec.Fat, rec.Carbs,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения рецепта %s: %w", rec.ID, err)
	}
	return nil
}
