package repository

import (
	"context"
	"database/sql"

	"mealbot/internal/models"
)

// SubscriptionRepository работает с подписками на еженедельные планы
type SubscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository создаёт репозиторий подписок
func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Upsert создаёт или обновляет подписку чата
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub models.Subscription) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO public.meal_subscriptions
		(chat_id, days_count, calories, protein, fat, carbs, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (chat_id) DO UPDATE SET
			days_count = EXCLUDED.days_count, calories = EXCLUDED.calories,
			protein = EXCLUDED.protein, fat = EXCLUDED.fat, carbs = EXCLUDED.carbs,
			updated_at = NOW()`,
		sub.ChatID, sub.DaysCount,
		sub.Target.Calories, sub.Target.Protein, sub.Target.Fat, sub.Target.Carbs,
	)
	return err
}

// Delete удаляет подписку чата
func (r *SubscriptionRepository) Delete(ctx context.Context, chatID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM public.meal_subscriptions WHERE chat_id = $1", chatID)
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

// ListAll возвращает все подписки
func (r *SubscriptionRepository) ListAll(ctx context.Context) ([]models.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT chat_id, days_count, calories, protein, fat, carbs, updated_at
		FROM public.meal_subscriptions
		ORDER BY chat_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var s models.Subscription
		if err := rows.Scan(
			&s.ChatID, &s.DaysCount,
			&s.Target.Calories, &s.Target.Protein, &s.Target.Fat, &s.Target.Carbs,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
