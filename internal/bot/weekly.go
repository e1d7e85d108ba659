package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron"
	"go.uber.org/zap"
)

const weeklyJobTimeout = 10 * time.Minute

// StartWeeklyPlans запускает рассылку планов подписчикам по расписанию cron
func (b *Bot) StartWeeklyPlans(schedule string) error {
	c := cron.New()
	if err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), weeklyJobTimeout)
		defer cancel()
		b.sendWeeklyPlans(ctx)
	}); err != nil {
		return fmt.Errorf("некорректное расписание %q: %w", schedule, err)
	}

	c.Start()
	b.cron = c
	b.logger.Info("еженедельная рассылка запущена", zap.String("schedule", schedule))
	return nil
}

// StopWeeklyPlans останавливает рассылку
func (b *Bot) StopWeeklyPlans() {
	if b.cron != nil {
		b.cron.Stop()
	}
}

// sendWeeklyPlans составляет и отправляет план каждому подписчику
func (b *Bot) sendWeeklyPlans(ctx context.Context) {
	subs, err := b.subs.ListAll(ctx)
	if err != nil {
		b.logger.Error("не удалось загрузить подписки", zap.Error(err))
		return
	}

	b.logger.Info("рассылка планов", zap.Int("subscribers", len(subs)))

	for _, sub := range subs {
		if ctx.Err() != nil {
			return
		}

		plan, err := b.buildPlan(ctx, sub.ChatID, sub.DaysCount, sub.Target)
		if err != nil {
			b.logger.Warn("план для подписчика не составлен", zap.Int64("chat_id", sub.ChatID), zap.Error(err))
			continue
		}

		b.sendLong(sub.ChatID, "Ваш план питания на неделю 🍽\n\n"+b.formatter.FormatPlan(plan))
	}
}
