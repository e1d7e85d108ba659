package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"mealbot/internal/generator/formatter"
	"mealbot/internal/models"
)

// sendError sends error message to user and logs it
func (b *Bot) sendError(chatID int64, userMessage string, err error) {
	if err != nil {
		b.logger.Error("ошибка обработки", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	msg := tgbotapi.NewMessage(chatID, userMessage)
	if _, sendErr := b.api.Send(msg); sendErr != nil {
		b.logger.Warn("не удалось отправить сообщение об ошибке", zap.Int64("chat_id", chatID), zap.Error(sendErr))
	}
}

// sendMessage sends message to user with error logging
func (b *Bot) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	if err != nil {
		b.logger.Warn("не удалось отправить сообщение", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return err
}

// sendLong отправляет длинный текст частями в пределах лимита Telegram
func (b *Bot) sendLong(chatID int64, text string) error {
	for _, part := range formatter.SplitMessage(text, formatter.TelegramMessageLimit) {
		if err := b.sendMessage(chatID, part); err != nil {
			return err
		}
	}
	return nil
}

// safeFloat64 safely converts string to float64, returns error on bad input
func safeFloat64(s string) (float64, error) {
	s = strings.Replace(s, ",", ".", 1)
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !isFinite(v) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

// parseTargets разбирает "ккал белки жиры углеводы"
func parseTargets(args string) (models.Nutrients, error) {
	fields := strings.Fields(args)
	if len(fields) != 4 {
		return models.Nutrients{}, fmt.Errorf("нужно четыре числа: ккал, белки, жиры, углеводы")
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := safeFloat64(f)
		if err != nil {
			return models.Nutrients{}, fmt.Errorf("не число: %q", f)
		}
		if v < 0 {
			return models.Nutrients{}, fmt.Errorf("значения не могут быть отрицательными")
		}
		values[i] = v
	}

	return models.Nutrients{
		Calories: values[0],
		Protein:  values[1],
		Fat:      values[2],
		Carbs:    values[3],
	}, nil
}

// parseDays разбирает необязательное количество дней
func parseDays(args string, defaultDays int) (int, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return defaultDays, nil
	}
	days, err := strconv.Atoi(args)
	if err != nil {
		return 0, fmt.Errorf("не число: %q", args)
	}
	return days, nil
}

func formatTargets(t models.Nutrients) string {
	return fmt.Sprintf("%.0f ккал, белки %.0f г, жиры %.0f г, углеводы %.0f г", t.Calories, t.Protein, t.Fat, t.Carbs)
}
