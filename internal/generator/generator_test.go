package generator

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"mealbot/internal/models"
)

var (
	oatmeal       = models.Recipe{ID: "oatmeal", Name: "Овсянка", Type: models.RecipeBreakfast, Calories: 400, Protein: 20, Fat: 12, Carbs: 55}
	cottageCheese = models.Recipe{ID: "cottage", Name: "Творог", Type: models.RecipeSnack, Category: "перекус", Calories: 200, Protein: 25, Fat: 5, Carbs: 10}
	dayTarget     = models.Nutrients{Calories: 2000, Protein: 150, Fat: 60, Carbs: 200}
)

func workedCatalog(withSnack bool) []models.Recipe {
	catalog := []models.Recipe{oatmeal, chickenRice, fishVeg}
	if withSnack {
		catalog = append(catalog, cottageCheese)
	}
	return catalog
}

func mealByType(day models.DayPlan, mt models.MealType) *models.MealSlot {
	for i := range day.Meals {
		if day.Meals[i].MealType == mt {
			return &day.Meals[i]
		}
	}
	return nil
}

func TestGenerate_WorkedExample(t *testing.T) {
	plan, err := New(nil).Generate(Request{DaysCount: 1, Target: dayTarget, Recipes: workedCatalog(true)})
	require.NoError(t, err)
	require.Len(t, plan.Days, 1)

	day := plan.Days[0]
	require.Len(t, day.Meals, 4)

	breakfast := mealByType(day, models.MealBreakfast)
	require.NotNil(t, breakfast)
	require.InDelta(t, 600, breakfast.Target.Calories, 1e-9)
	require.Equal(t, "oatmeal", breakfast.Dishes[0].Recipe.ID)
	require.GreaterOrEqual(t, breakfast.Dishes[0].Portions, 1)
	require.LessOrEqual(t, breakfast.Dishes[0].Portions, 2)

	lunch := mealByType(day, models.MealLunch)
	require.NotNil(t, lunch)
	require.InDelta(t, 700, lunch.Target.Calories, 1e-9)
	require.Equal(t, "chicken", lunch.Dishes[0].Recipe.ID)

	dinner := mealByType(day, models.MealDinner)
	require.NotNil(t, dinner)
	require.InDelta(t, 500, dinner.Target.Calories, 1e-9)
	require.Equal(t, "fish", dinner.Dishes[0].Recipe.ID)

	snack := mealByType(day, models.SnackMeal(1))
	require.NotNil(t, snack)
	require.Equal(t, models.SlotFiller, snack.Role)
	require.Equal(t, "cottage", snack.Dishes[0].Recipe.ID)

	// Коррекция дня добавляет порцию творога: 1700 -> 1900 ккал
	require.Equal(t, 2, snack.Dishes[0].Portions)
	require.InDelta(t, 1900, day.Actual.Calories, 1e-9)

	// Итог блюда проставлен уже после коррекции порций
	require.Equal(t, models.Nutrients{Calories: 400, Protein: 50, Fat: 10, Carbs: 20}, snack.Dishes[0].Totals)
	for _, meal := range day.Meals {
		for _, d := range meal.Dishes {
			require.Equal(t, d.CalcTotals(), d.Totals)
		}
	}
}

func TestGenerate_WorkedExampleWithoutSnacks(t *testing.T) {
	plan, err := New(nil).Generate(Request{DaysCount: 1, Target: dayTarget, Recipes: workedCatalog(false)})
	require.NoError(t, err)

	day := plan.Days[0]
	require.Len(t, day.Meals, 3)
	require.Less(t, day.Actual.Calories, dayTarget.Calories)
	require.InDelta(t, 1500, day.Actual.Calories, 1e-9)
}

func TestGenerate_PlanShape(t *testing.T) {
	g := New(nil)
	for _, n := range []int{1, 2, 3, 7, 14, 90} {
		plan, err := g.Generate(Request{DaysCount: n, Target: dayTarget, Recipes: workedCatalog(true)})
		require.NoError(t, err)
		require.Len(t, plan.Days, n)
		require.Equal(t, n, plan.DaysCount)
		require.NotEmpty(t, plan.ID)
		require.Equal(t, models.MealPlanDraft, plan.Status)

		for i, day := range plan.Days {
			require.Equal(t, i+1, day.Day)
			require.GreaterOrEqual(t, len(day.Meals), 1)
			require.LessOrEqual(t, len(day.Meals), models.MaxMealsPerDay)
			for _, meal := range day.Meals {
				require.NotEmpty(t, meal.Dishes)
				for _, d := range meal.Dishes {
					require.GreaterOrEqual(t, d.Portions, models.MinPortions)
					require.LessOrEqual(t, d.Portions, models.MaxPortions)
				}
			}
		}
	}
}

func TestGenerate_BatchCookingPairsAreIdentical(t *testing.T) {
	catalog := append(workedCatalog(true), greekSalad, cucumbers)
	plan, err := New(nil).Generate(Request{DaysCount: 5, Target: dayTarget, Recipes: catalog})
	require.NoError(t, err)

	for k := 0; k+1 < len(plan.Days); k += 2 {
		for _, mt := range models.MandatoryMeals {
			a := mealByType(plan.Days[k], mt)
			b := mealByType(plan.Days[k+1], mt)
			require.NotNil(t, a)
			require.NotNil(t, b)
			require.Equal(t, *a, *b, "день %d и %d, %s", k+1, k+2, mt)
		}
	}

	// Последний нечётный день строится отдельно, но тоже с обязательными приёмами пищи
	last := plan.Days[4]
	for _, mt := range models.MandatoryMeals {
		require.NotNil(t, mealByType(last, mt))
	}

	// Копии слотов независимы
	plan.Days[0].Meals[0].Dishes[0].Portions = 5
	require.NotEqual(t, 5, plan.Days[1].Meals[0].Dishes[0].Portions)
}

func TestGenerate_CategorySafety(t *testing.T) {
	catalog := []models.Recipe{
		oatmeal,
		chickenRice,
		fishVeg,
		{ID: "lunch-salad", Type: models.RecipeSalad, Category: "обед", Calories: 120, Protein: 4, Fat: 7, Carbs: 10},
		{ID: "dinner-salad", Type: models.RecipeSalad, Category: "ужин", Calories: 90, Protein: 2, Fat: 5, Carbs: 8},
	}
	plan, err := New(nil).Generate(Request{DaysCount: 4, Target: dayTarget, Recipes: catalog})
	require.NoError(t, err)

	for _, day := range plan.Days {
		for _, meal := range day.Meals {
			for _, d := range meal.Dishes {
				c, _ := NormalizeCategory(d.Recipe.Category)
				if meal.MealType == models.MealDinner {
					require.NotEqual(t, CategoryLunch, c, "обеденное блюдо %s на ужин", d.Recipe.ID)
				}
				if meal.MealType == models.MealBreakfast {
					require.NotContains(t, []Category{CategoryLunch, CategoryDinner}, c)
				}
			}
		}
	}
}

func TestGenerate_NoDeficitNoSnacks(t *testing.T) {
	catalog := []models.Recipe{
		{ID: "b", Type: models.RecipeBreakfast, Calories: 600, Protein: 45, Fat: 18, Carbs: 60},
		{ID: "l", Type: models.RecipeMain, Category: "обед", Calories: 700, Protein: 52.5, Fat: 21, Carbs: 70},
		{ID: "d", Type: models.RecipeMain, Category: "ужин", Calories: 500, Protein: 37.5, Fat: 15, Carbs: 50},
		cottageCheese,
	}
	plan, err := New(nil).Generate(Request{DaysCount: 2, Target: dayTarget, Recipes: catalog})
	require.NoError(t, err)

	for _, day := range plan.Days {
		require.Len(t, day.Meals, 3)
		for _, meal := range day.Meals {
			require.True(t, IsSlotValid(meal.Actual, meal.Target))
		}
	}
}

func TestGenerate_EmptyMandatoryCatalog(t *testing.T) {
	_, err := New(nil).Generate(Request{DaysCount: 3, Target: dayTarget, Recipes: []models.Recipe{cottageCheese}})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoRecipes))

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, models.MandatoryMeals, cfgErr.MealTypes)

	_, err = New(nil).Generate(Request{DaysCount: 1, Target: dayTarget})
	require.ErrorIs(t, err, ErrNoRecipes)
}

func TestGenerate_FilteredButUnselectableCatalog(t *testing.T) {
	// Проходит фильтр завтрака, но основным блюдом завтрака быть не может
	dessertBreakfast := models.Recipe{ID: "pancake", Name: "Блинчики", Type: models.RecipeBreakfast, Category: "десерт", Calories: 400, Protein: 10, Fat: 15, Carbs: 55}
	require.NotEmpty(t, FilterRecipes([]models.Recipe{dessertBreakfast}, models.MealBreakfast))

	_, err := New(nil).Generate(Request{
		DaysCount: 2,
		Target:    models.Nutrients{Calories: 2000},
		Recipes:   []models.Recipe{dessertBreakfast},
	})
	require.ErrorIs(t, err, ErrNoRecipes)
}

func TestGenerate_SaladOnlyCatalogBuildsMeals(t *testing.T) {
	plan, err := New(nil).Generate(Request{DaysCount: 2, Target: dayTarget, Recipes: []models.Recipe{greekSalad}})
	require.NoError(t, err)
	for _, day := range plan.Days {
		require.GreaterOrEqual(t, len(day.Meals), 1)
	}
}

func TestGenerate_PartialCatalogStillEmitsDays(t *testing.T) {
	plan, err := New(nil).Generate(Request{DaysCount: 3, Target: dayTarget, Recipes: []models.Recipe{chickenRice}})
	require.NoError(t, err)
	require.Len(t, plan.Days, 3)

	for _, day := range plan.Days {
		require.Len(t, day.Meals, 1)
		require.Equal(t, models.MealLunch, day.Meals[0].MealType)
		require.Less(t, day.Actual.Calories, day.Target.Calories)
	}
}

func TestGenerate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"zero days", Request{DaysCount: 0, Target: dayTarget}, "days_count"},
		{"too many days", Request{DaysCount: 91, Target: dayTarget}, "days_count"},
		{"negative protein", Request{DaysCount: 1, Target: models.Nutrients{Calories: 2000, Protein: -1}}, "target"},
		{"NaN calories", Request{DaysCount: 1, Target: models.Nutrients{Calories: math.NaN()}}, "target"},
		{"infinite carbs", Request{DaysCount: 1, Target: models.Nutrients{Calories: 2000, Carbs: math.Inf(1)}}, "target"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Recipes = workedCatalog(true)
			_, err := New(nil).Generate(tt.req)
			var vErr ValidationError
			require.True(t, errors.As(err, &vErr))
			require.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestGenerate_ZeroTarget(t *testing.T) {
	plan, err := New(nil).Generate(Request{DaysCount: 2, Recipes: workedCatalog(true)})
	require.NoError(t, err)

	for _, day := range plan.Days {
		require.Len(t, day.Meals, 3)
		for _, meal := range day.Meals {
			require.Equal(t, models.MinPortions, meal.Dishes[0].Portions)
		}
	}
}

func TestGenerate_ConcurrentCallsShareNothing(t *testing.T) {
	g := New(nil)
	catalog := append(workedCatalog(true), greekSalad, cucumbers)
	snapshot := append([]models.Recipe(nil), catalog...)

	var wg sync.WaitGroup
	plans := make([]*models.MealPlan, 8)
	for i := range plans {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := g.Generate(Request{DaysCount: 6, Target: dayTarget, Recipes: catalog})
			if err == nil {
				plans[i] = p
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, snapshot, catalog)
	for _, p := range plans {
		require.NotNil(t, p)
		require.Equal(t, plans[0].Days, p.Days)
	}
}
