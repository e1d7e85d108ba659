package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"mealbot/internal/calendar"
	"mealbot/internal/generator"
	"mealbot/internal/models"
	"mealbot/internal/repository"
)

const (
	commandStart       = "start"
	commandHelp        = "help"
	commandTargets     = "targets"
	commandPlan        = "plan"
	commandLast        = "last"
	commandHistory     = "history"
	commandCalendar    = "calendar"
	commandSubscribe   = "subscribe"
	commandUnsubscribe = "unsubscribe"
)

const historyLimit = 5

const helpText = `Я составляю план питания под вашу норму КБЖУ.

/targets - показать норму
/targets 2000 120 70 220 - задать норму (ккал, белки, жиры, углеводы)
/plan [дни] - составить план (по умолчанию %d дн.)
/last - последний план
/history - последние планы
/calendar [ДД.ММ.ГГГГ] - последний план в календарь (.ics)
/subscribe [дни] - получать план каждую неделю
/unsubscribe - отписаться`

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	args := message.CommandArguments()

	switch message.Command() {
	case commandStart, commandHelp:
		b.sendMessage(chatID, fmt.Sprintf(helpText, b.config.DefaultDays))

	case commandTargets:
		b.handleTargets(chatID, args)

	case commandPlan:
		b.handlePlan(ctx, chatID, args)

	case commandLast:
		b.handleLast(ctx, chatID)

	case commandHistory:
		b.handleHistory(ctx, chatID)

	case commandCalendar:
		b.handleCalendar(ctx, chatID, args)

	case commandSubscribe:
		b.handleSubscribe(ctx, chatID, args)

	case commandUnsubscribe:
		b.handleUnsubscribe(ctx, chatID)

	default:
		b.sendMessage(chatID, "Пока я такого не умею =(")
	}
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	b.sendMessage(message.Chat.ID, "Отправьте /help, чтобы увидеть список команд")
}

func (b *Bot) handleTargets(chatID int64, args string) {
	if strings.TrimSpace(args) == "" {
		b.sendMessage(chatID, "Ваша норма: "+formatTargets(b.targets.get(chatID)))
		return
	}

	target, err := parseTargets(args)
	if err != nil {
		b.sendMessage(chatID, "Не удалось разобрать норму: "+err.Error())
		return
	}
	if err := validateTargets(target); err != nil {
		b.sendMessage(chatID, err.Error())
		return
	}

	b.targets.set(chatID, target)
	b.sendMessage(chatID, "Норма сохранена: "+formatTargets(target))
}

func (b *Bot) handlePlan(ctx context.Context, chatID int64, args string) {
	days, err := parseDays(args, b.config.DefaultDays)
	if err != nil {
		b.sendMessage(chatID, "Не удалось разобрать количество дней: "+err.Error())
		return
	}

	plan, err := b.buildPlan(ctx, chatID, days, b.targets.get(chatID))
	if err != nil {
		b.replyPlanError(chatID, err)
		return
	}

	b.sendLong(chatID, b.formatter.FormatPlan(plan))
}

// buildPlan генерирует план, сохраняет его активным и архивирует предыдущий
func (b *Bot) buildPlan(ctx context.Context, chatID int64, days int, target models.Nutrients) (*models.MealPlan, error) {
	recipes, err := b.recipes.ListForOwner(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("загрузка рецептов: %w", err)
	}

	plan, err := b.generator.Generate(generator.Request{
		DaysCount: days,
		Target:    target,
		Recipes:   recipes,
	})
	if err != nil {
		return nil, err
	}

	// Предыдущий план архивируется только после сохранения нового
	previous, err := b.plans.GetLatestByChatID(ctx, chatID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		b.logger.Warn("не удалось получить предыдущий план", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	plan.Status = models.MealPlanActive
	if err := b.plans.Create(ctx, chatID, plan); err != nil {
		return nil, fmt.Errorf("сохранение плана: %w", err)
	}

	if previous != nil && previous.ID != plan.ID {
		if err := b.plans.UpdateStatus(ctx, previous.ID, models.MealPlanArchived); err != nil {
			b.logger.Warn("не удалось архивировать план", zap.String("plan_id", previous.ID), zap.Error(err))
		}
	}

	b.logger.Info("план составлен",
		zap.Int64("chat_id", chatID),
		zap.String("plan_id", plan.ID),
		zap.Int("days", plan.DaysCount),
	)
	return plan, nil
}

func (b *Bot) replyPlanError(chatID int64, err error) {
	var validationErr generator.ValidationError
	switch {
	case errors.As(err, &validationErr):
		b.sendMessage(chatID, validationErr.Message)
	case errors.Is(err, generator.ErrNoRecipes):
		b.sendMessage(chatID, "В каталоге нет рецептов для завтрака, обеда и ужина. Добавьте рецепты и попробуйте снова.")
	default:
		b.sendError(chatID, "Не удалось составить план, попробуйте позже", err)
	}
}

func (b *Bot) handleLast(ctx context.Context, chatID int64) {
	plan, err := b.plans.GetLatestByChatID(ctx, chatID)
	if errors.Is(err, repository.ErrNotFound) {
		b.sendMessage(chatID, "У вас пока нет планов. Отправьте /plan")
		return
	}
	if err != nil {
		b.sendError(chatID, "Не удалось загрузить план", err)
		return
	}

	b.sendLong(chatID, b.formatter.FormatPlan(plan))
}

func (b *Bot) handleHistory(ctx context.Context, chatID int64) {
	plans, err := b.plans.ListRecentByChatID(ctx, chatID, historyLimit)
	if err != nil {
		b.sendError(chatID, "Не удалось загрузить историю", err)
		return
	}
	if len(plans) == 0 {
		b.sendMessage(chatID, "У вас пока нет планов. Отправьте /plan")
		return
	}

	var sb strings.Builder
	sb.WriteString("Последние планы:\n")
	for _, p := range plans {
		sb.WriteString(fmt.Sprintf("━━━━━━━━━━━━━━━\n%s | %d дн. | %.0f ккал | %s\n",
			p.CreatedAt.Format("02.01.2006"), p.DaysCount, p.Target.Calories, statusNameRu(p.Status)))
	}
	b.sendMessage(chatID, sb.String())
}

func (b *Bot) handleCalendar(ctx context.Context, chatID int64, args string) {
	start := time.Now().AddDate(0, 0, 1)
	if strings.TrimSpace(args) != "" {
		date, err := calendar.ParseDate(args)
		if err != nil {
			b.sendMessage(chatID, "Неверный формат даты. Используйте ДД.ММ.ГГГГ")
			return
		}
		start = date
	}

	plan, err := b.plans.GetLatestByChatID(ctx, chatID)
	if errors.Is(err, repository.ErrNotFound) {
		b.sendMessage(chatID, "У вас пока нет планов. Отправьте /plan")
		return
	}
	if err != nil {
		b.sendError(chatID, "Не удалось загрузить план", err)
		return
	}

	ics := calendar.GenerateICS("План питания", calendar.PlanEvents(plan, start), time.Now())
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("meal_plan_%s.ics", start.Format("02-01-2006")),
		Bytes: []byte(ics),
	})
	doc.Caption = "Откройте файл для добавления в календарь"
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Warn("не удалось отправить календарь", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) handleSubscribe(ctx context.Context, chatID int64, args string) {
	days, err := parseDays(args, 7)
	if err != nil {
		b.sendMessage(chatID, "Не удалось разобрать количество дней: "+err.Error())
		return
	}
	if err := validateDays(days); err != nil {
		b.sendMessage(chatID, err.Error())
		return
	}

	target := b.targets.get(chatID)
	err = b.subs.Upsert(ctx, models.Subscription{ChatID: chatID, DaysCount: days, Target: target})
	if err != nil {
		b.sendError(chatID, "Не удалось оформить подписку", err)
		return
	}

	b.sendMessage(chatID, fmt.Sprintf("Готово! Каждую неделю буду присылать план на %d дн.\nНорма: %s", days, formatTargets(target)))
}

func (b *Bot) handleUnsubscribe(ctx context.Context, chatID int64) {
	err := b.subs.Delete(ctx, chatID)
	if errors.Is(err, repository.ErrNotFound) {
		b.sendMessage(chatID, "Вы не подписаны")
		return
	}
	if err != nil {
		b.sendError(chatID, "Не удалось отменить подписку", err)
		return
	}
	b.sendMessage(chatID, "Подписка отменена")
}

func statusNameRu(s models.MealPlanStatus) string {
	switch s {
	case models.MealPlanActive:
		return "активный"
	case models.MealPlanArchived:
		return "в архиве"
	default:
		return "черновик"
	}
}
