package calendar

import (
	"fmt"
	"strings"
	"time"

	"mealbot/internal/models"
)

// Event представляет событие календаря
type Event struct {
	UID         string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Reminder    int // минут до события
}

// Время приёмов пищи от полуночи
var mealTimes = map[models.MealType]time.Duration{
	models.MealBreakfast: 8 * time.Hour,
	models.SnackMeal(1):  10*time.Hour + 30*time.Minute,
	models.MealLunch:     13 * time.Hour,
	models.SnackMeal(2):  16 * time.Hour,
	models.MealDinner:    19 * time.Hour,
	models.SnackMeal(3):  21 * time.Hour,
}

const (
	mealDuration    = 30 * time.Minute
	defaultReminder = 15
	lateSnackTime   = 21*time.Hour + 30*time.Minute
)

// mealOffset возвращает время приёма пищи от начала дня
func mealOffset(m models.MealType) time.Duration {
	if offset, ok := mealTimes[m]; ok {
		return offset
	}
	return lateSnackTime
}

// PlanEvents превращает план в события: один приём пищи - одно событие.
// День 1 плана приходится на start (время суток отбрасывается).
func PlanEvents(plan *models.MealPlan, start time.Time) []Event {
	base := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	var events []Event
	for _, day := range plan.Days {
		date := base.AddDate(0, 0, day.Day-1)
		for _, meal := range day.Meals {
			begin := date.Add(mealOffset(meal.MealType))
			events = append(events, Event{
				UID:         fmt.Sprintf("%s-%d-%s@mealbot", plan.ID, day.Day, meal.MealType),
				Summary:     meal.MealType.NameRu(),
				Description: mealDescription(meal),
				StartTime:   begin,
				EndTime:     begin.Add(mealDuration),
				Reminder:    defaultReminder,
			})
		}
	}
	return events
}

func mealDescription(meal models.MealSlot) string {
	lines := make([]string, 0, len(meal.Dishes)+1)
	for _, d := range meal.Dishes {
		lines = append(lines, fmt.Sprintf("%s × %d", d.Recipe.Name, d.Portions))
	}
	lines = append(lines, fmt.Sprintf("%.0f ккал, Б %.0f, Ж %.0f, У %.0f",
		meal.Actual.Calories, meal.Actual.Protein, meal.Actual.Fat, meal.Actual.Carbs))
	return strings.Join(lines, "\n")
}

// GenerateICS генерирует .ics файл с несколькими событиями
func GenerateICS(name string, events []Event, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//MealBot//Meal Plan//RU\r\n")
	sb.WriteString("CALSCALE:GREGORIAN\r\n")
	sb.WriteString("METHOD:PUBLISH\r\n")
	sb.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(name)))

	for _, event := range events {
		sb.WriteString("BEGIN:VEVENT\r\n")
		sb.WriteString(fmt.Sprintf("UID:%s\r\n", event.UID))
		sb.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))
		sb.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(event.StartTime)))
		sb.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(event.EndTime)))
		sb.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(event.Summary)))

		if event.Description != "" {
			sb.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(event.Description)))
		}

		if event.Reminder > 0 {
			sb.WriteString("BEGIN:VALARM\r\n")
			sb.WriteString("ACTION:DISPLAY\r\n")
			sb.WriteString(fmt.Sprintf("TRIGGER:-PT%dM\r\n", event.Reminder))
			sb.WriteString("DESCRIPTION:Напоминание о приёме пищи\r\n")
			sb.WriteString("END:VALARM\r\n")
		}

		sb.WriteString("END:VEVENT\r\n")
	}

	sb.WriteString("END:VCALENDAR\r\n")

	return sb.String()
}

// formatICSTime форматирует время в формат iCalendar
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS экранирует специальные символы для iCalendar
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// ParseDate парсит дату в формате ДД.ММ.ГГГГ
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse("02.01.2006", strings.TrimSpace(dateStr))
}
