package formatter

import (
	"fmt"
	"strings"

	"mealbot/internal/models"
)

// TelegramMessageLimit - максимальная длина сообщения Telegram
const TelegramMessageLimit = 4096

// TelegramFormatter - форматтер планов питания для Telegram
type TelegramFormatter struct{}

// NewTelegramFormatter создаёт новый форматтер
func NewTelegramFormatter() *TelegramFormatter {
	return &TelegramFormatter{}
}

// FormatPlan форматирует весь план
func (f *TelegramFormatter) FormatPlan(plan *models.MealPlan) string {
	var sb strings.Builder

	// Заголовок
	sb.WriteString(f.formatHeader(plan))
	sb.WriteString("\n")

	// Дни
	for _, day := range plan.Days {
		sb.WriteString(f.formatDay(day))
		sb.WriteString("\n")
	}

	// Итоги
	sb.WriteString(f.FormatSummary(plan))

	return sb.String()
}

// formatHeader форматирует заголовок плана
func (f *TelegramFormatter) formatHeader(plan *models.MealPlan) string {
	return fmt.Sprintf(`ПЛАН ПИТАНИЯ
Дней: %d

Норма в день: %s
`,
		plan.DaysCount,
		formatNutrients(plan.Target),
	)
}

// formatDay форматирует день плана
func (f *TelegramFormatter) formatDay(day models.DayPlan) string {
	var sb strings.Builder

	sb.WriteString("┌─────────────────────────────────\n")
	sb.WriteString(fmt.Sprintf("│ ДЕНЬ %d\n", day.Day))
	sb.WriteString("└─────────────────────────────────\n\n")

	for _, meal := range day.Meals {
		sb.WriteString(f.formatMeal(meal))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Итого: %s\n", formatNutrients(day.Actual)))
	sb.WriteString(fmt.Sprintf("%s Отклонение по калориям: %+.1f%%\n", deviationEmoji(day.CalorieDeviation()), day.CalorieDeviation()))

	return sb.String()
}

// formatMeal форматирует приём пищи
func (f *TelegramFormatter) formatMeal(meal models.MealSlot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", meal.MealType.NameRu()))
	sb.WriteString("━━━━━━━━━━━━━━━━━━━━━\n")

	for i, d := range meal.Dishes {
		sb.WriteString(fmt.Sprintf("%d. %s × %d %s\n", i+1, d.Recipe.Name, d.Portions, portionWord(d.Portions)))
		sb.WriteString(fmt.Sprintf("   %s\n", formatNutrients(d.CalcTotals())))
	}

	return sb.String()
}

// FormatSummary форматирует сводку точности плана
func (f *TelegramFormatter) FormatSummary(plan *models.MealPlan) string {
	s := plan.Summary()

	var sb strings.Builder
	sb.WriteString("━━━━━━━━━━━━━━━━━━━━━\n")
	sb.WriteString("ИТОГИ ПЛАНА\n")
	sb.WriteString("━━━━━━━━━━━━━━━━━━━━━\n")
	sb.WriteString(fmt.Sprintf("Дней в норме (±%.0f%%): %d из %d\n", models.DayBandPercent, s.DaysWithinBand, len(plan.Days)))
	sb.WriteString(fmt.Sprintf("Среднее отклонение: %.1f%%\n", s.AvgCalorieDeviation))
	sb.WriteString(fmt.Sprintf("Перекусов: %d\n", s.SnackCount))

	return sb.String()
}

// SplitMessage режет текст на части не длиннее limit символов по границам строк
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = TelegramMessageLimit
	}
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	var parts []string
	var current strings.Builder
	currentLen := 0

	for _, line := range strings.SplitAfter(text, "\n") {
		lineLen := len([]rune(line))
		if currentLen+lineLen > limit && currentLen > 0 {
			parts = append(parts, current.String())
			current.Reset()
			currentLen = 0
		}
		// Строка длиннее лимита режется по символам
		for lineLen > limit {
			r := []rune(line)
			parts = append(parts, string(r[:limit]))
			line = string(r[limit:])
			lineLen -= limit
		}
		current.WriteString(line)
		currentLen += lineLen
	}
	if currentLen > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func formatNutrients(n models.Nutrients) string {
	return fmt.Sprintf("%.0f ккал | Б %.0f | Ж %.0f | У %.0f", n.Calories, n.Protein, n.Fat, n.Carbs)
}

// portionWord склоняет слово "порция"
func portionWord(n int) string {
	switch {
	case n%10 == 1 && n%100 != 11:
		return "порция"
	case n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20):
		return "порции"
	default:
		return "порций"
	}
}

func deviationEmoji(deviation float64) string {
	switch {
	case deviation >= -models.DayBandPercent && deviation <= models.DayBandPercent:
		return "✅"
	case deviation < 0:
		return "⬇️"
	default:
		return "⬆️"
	}
}
