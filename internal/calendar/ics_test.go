package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mealbot/internal/models"
)

func twoDayPlan() *models.MealPlan {
	oats := models.Recipe{ID: "oats", Name: "Овсянка", Type: models.RecipeBreakfast, Calories: 400, Protein: 20, Fat: 12, Carbs: 55}
	cottage := models.Recipe{ID: "cottage", Name: "Творог", Type: models.RecipeSnack, Calories: 200, Protein: 25, Fat: 5, Carbs: 10}

	day := func(n int) models.DayPlan {
		d := models.DayPlan{
			Day: n,
			Meals: []models.MealSlot{
				{MealType: models.MealBreakfast, Dishes: []models.SelectedDish{{Recipe: oats, Portions: 1}}},
				{MealType: models.SnackMeal(1), Dishes: []models.SelectedDish{{Recipe: cottage, Portions: 2}}},
			},
		}
		d.Recalculate()
		return d
	}

	return &models.MealPlan{ID: "plan", DaysCount: 2, Days: []models.DayPlan{day(1), day(2)}}
}

func TestPlanEvents(t *testing.T) {
	start := time.Date(2026, 10, 20, 17, 45, 0, 0, time.UTC)
	events := PlanEvents(twoDayPlan(), start)

	require.Len(t, events, 4)

	require.Equal(t, "plan-1-breakfast@mealbot", events[0].UID)
	require.Equal(t, "Завтрак", events[0].Summary)
	require.Equal(t, time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC), events[0].StartTime)
	require.Equal(t, time.Date(2026, 10, 20, 8, 30, 0, 0, time.UTC), events[0].EndTime)

	require.Equal(t, "Перекус 1", events[1].Summary)
	require.Equal(t, time.Date(2026, 10, 20, 10, 30, 0, 0, time.UTC), events[1].StartTime)
	require.Equal(t, "Творог × 2\n400 ккал, Б 50, Ж 10, У 20", events[1].Description)

	require.Equal(t, time.Date(2026, 10, 21, 8, 0, 0, 0, time.UTC), events[2].StartTime)
}

func TestMealOffsetUnknownSnack(t *testing.T) {
	require.Equal(t, 21*time.Hour+30*time.Minute, mealOffset(models.SnackMeal(4)))
}

func TestGenerateICS(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	events := PlanEvents(twoDayPlan(), time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC))

	ics := GenerateICS("План питания", events, now)

	require.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n"))
	require.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
	require.Equal(t, 4, strings.Count(ics, "BEGIN:VEVENT"))
	require.Contains(t, ics, "X-WR-CALNAME:План питания\r\n")
	require.Contains(t, ics, "DTSTART:20261020T080000Z\r\n")
	require.Contains(t, ics, "DTSTAMP:20261019T120000Z\r\n")
	require.Contains(t, ics, "DESCRIPTION:Творог × 2\\n400 ккал\\, Б 50\\, Ж 10\\, У 20\r\n")
	require.Contains(t, ics, "TRIGGER:-PT15M\r\n")
}

func TestEscapeICS(t *testing.T) {
	require.Equal(t, `a\;b\,c\\d\ne`, escapeICS("a;b,c\\d\ne"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 20.10.2026 ")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("2026-10-20")
	require.Error(t, err)
}
