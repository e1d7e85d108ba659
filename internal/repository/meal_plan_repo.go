package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mealbot/internal/models"
)

// MealPlanRepository работает с планами питания
type MealPlanRepository struct {
	db *sql.DB
}

// NewMealPlanRepository создаёт репозиторий планов питания
func NewMealPlanRepository(db *sql.DB) *MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Create сохраняет план целиком (JSONB) и сводку по дням в одной транзакции
func (r *MealPlanRepository) Create(ctx context.Context, chatID int64, plan *models.MealPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("ошибка сериализации плана: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO public.meal_plans
		(id, chat_id, days_count, calories, protein, fat, carbs, status, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		plan.ID, chatID, plan.DaysCount,
		plan.Target.Calories, plan.Target.Protein, plan.Target.Fat, plan.Target.Carbs,
		plan.Status, payload, plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения плана: %w", err)
	}

	for _, day := range plan.Days {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO public.meal_plan_days
			(plan_id, day_num, meals_count, calories, protein, fat, carbs)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			plan.ID, day.Day, len(day.Meals),
			day.Actual.Calories, day.Actual.Protein, day.Actual.Fat, day.Actual.Carbs,
		)
		if err != nil {
			return fmt.Errorf("ошибка сохранения дня %d: %w", day.Day, err)
		}
	}

	return tx.Commit()
}

// GetByID возвращает план по ID
func (r *MealPlanRepository) GetByID(ctx context.Context, id string) (*models.MealPlan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT payload, status
		FROM public.meal_plans
		WHERE id = $1`, id)
	return scanPlan(row)
}

// GetLatestByChatID возвращает последний план чата
func (r *MealPlanRepository) GetLatestByChatID(ctx context.Context, chatID int64) (*models.MealPlan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT payload, status
		FROM public.meal_plans
		WHERE chat_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, chatID)
	return scanPlan(row)
}

// ListRecentByChatID возвращает последние планы чата без содержимого дней
func (r *MealPlanRepository) ListRecentByChatID(ctx context.Context, chatID int64, limit int) ([]models.MealPlan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, days_count, calories, protein, fat, carbs, status, created_at
		FROM public.meal_plans
		WHERE chat_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, chatID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.MealPlan
	for rows.Next() {
		var p models.MealPlan
		if err := rows.Scan(
			&p.ID, &p.DaysCount,
			&p.Target.Calories, &p.Target.Protein, &p.Target.Fat, &p.Target.Carbs,
			&p.Status, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// UpdateStatus обновляет статус плана
func (r *MealPlanRepository) UpdateStatus(ctx context.Context, id string, status models.MealPlanStatus) error {
	if !status.Valid() {
		return fmt.Errorf("неизвестный статус плана: %q", status)
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE public.meal_plans SET status = $1 WHERE id = $2",
		status, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPlan(row *sql.Row) (*models.MealPlan, error) {
	var payload []byte
	var status models.MealPlanStatus
	if err := row.Scan(&payload, &status); err != nil {
		return nil, notFound(err)
	}

	plan := &models.MealPlan{}
	if err := json.Unmarshal(payload, plan); err != nil {
		return nil, fmt.Errorf("ошибка чтения плана: %w", err)
	}
	// Статус в колонке актуальнее снимка
	plan.Status = status
	return plan, nil
}
