package generator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mealbot/internal/models"
)

func TestOptimizePortions_ConvergesToValidSlot(t *testing.T) {
	target := models.Nutrients{Calories: 900, Protein: 60, Fat: 30, Carbs: 90}
	porridge := models.Recipe{ID: "porridge", Type: models.RecipeBreakfast, Calories: 300, Protein: 20, Fat: 10, Carbs: 30}

	got := OptimizePortions([]models.SelectedDish{{Recipe: porridge, Portions: 1, Role: models.RoleMain}}, target)

	require.Len(t, got, 1)
	require.Equal(t, 3, got[0].Portions)
	require.True(t, IsSlotValid(models.SumDishes(got), target))
}

func TestOptimizePortions_CandidateWithinHalfOfTarget(t *testing.T) {
	target := models.Nutrients{Calories: 1000, Protein: 60, Fat: 30, Carbs: 120}

	tests := []struct {
		name     string
		recipe   models.Recipe
		portions int
	}{
		{"half of target from one portion", models.Recipe{ID: "half", Calories: 500, Protein: 30, Fat: 15, Carbs: 60}, 1},
		{"just over half from three portions", models.Recipe{ID: "over", Calories: 520, Protein: 31, Fat: 15.5, Carbs: 62}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OptimizePortions([]models.SelectedDish{{Recipe: tt.recipe, Portions: tt.portions, Role: models.RoleMain}}, target)
			require.Len(t, got, 1)
			require.Equal(t, 2, got[0].Portions)
			require.True(t, IsSlotValid(models.SumDishes(got), target), "итог: %+v", models.SumDishes(got))
			require.Equal(t, tt.recipe.PerPortion().Scale(2), got[0].Totals)
		})
	}
}

func TestOptimizePortions_MainWithSide(t *testing.T) {
	target := models.Nutrients{Calories: 700, Protein: 50, Fat: 22, Carbs: 70}
	dishes := []models.SelectedDish{
		{Recipe: models.Recipe{ID: "steak", Calories: 250, Protein: 25, Fat: 8, Carbs: 20}, Portions: 1, Role: models.RoleMain},
		{Recipe: models.Recipe{ID: "salad", Calories: 100, Protein: 0, Fat: 3, Carbs: 15}, Portions: 1, Role: models.RoleSide},
	}

	got := OptimizePortions(dishes, target)

	require.True(t, IsSlotValid(models.SumDishes(got), target), "итог: %+v", models.SumDishes(got))
	require.Equal(t, 2, got[0].Portions)
	require.Equal(t, 2, got[1].Portions)
	// Исходные блюда не изменены
	require.Equal(t, 1, dishes[0].Portions)
	require.Equal(t, 1, dishes[1].Portions)
}

func TestOptimizePortions_RespectsBounds(t *testing.T) {
	t.Run("never above five", func(t *testing.T) {
		tiny := models.Recipe{ID: "tiny", Calories: 10, Protein: 1, Fat: 1, Carbs: 1}
		got := OptimizePortions([]models.SelectedDish{{Recipe: tiny, Portions: 1}}, models.Nutrients{Calories: 1000, Protein: 100, Fat: 100, Carbs: 100})
		require.Equal(t, models.MaxPortions, got[0].Portions)
	})

	t.Run("never below one", func(t *testing.T) {
		huge := models.Recipe{ID: "huge", Calories: 1000, Protein: 80, Fat: 50, Carbs: 100}
		got := OptimizePortions([]models.SelectedDish{{Recipe: huge, Portions: 3}}, models.Nutrients{Calories: 100, Protein: 10, Fat: 5, Carbs: 10})
		require.Equal(t, models.MinPortions, got[0].Portions)
	})

	t.Run("clamps input", func(t *testing.T) {
		r := models.Recipe{ID: "r", Calories: 100, Protein: 10, Fat: 3, Carbs: 10}
		got := OptimizePortions([]models.SelectedDish{{Recipe: r, Portions: 9}}, models.Nutrients{})
		require.Equal(t, models.MaxPortions, got[0].Portions)
	})
}

func TestOptimizePortions_StopsWithoutImprovement(t *testing.T) {
	// Лишняя порция углеводов снимается, вернуть её обратно штраф не даёт
	target := models.Nutrients{Calories: 600, Protein: 45, Fat: 18, Carbs: 60}
	oats := models.Recipe{ID: "oats", Calories: 400, Protein: 20, Fat: 12, Carbs: 55}

	got := OptimizePortions([]models.SelectedDish{{Recipe: oats, Portions: 2}}, target)

	require.Equal(t, 1, got[0].Portions)
	require.InDelta(t, 249.7, Deviation(target, models.SumDishes(got)), 1e-6)
}

func TestOptimizePortions_ValidInputUnchanged(t *testing.T) {
	target := models.Nutrients{Calories: 500, Protein: 40, Fat: 18, Carbs: 40}
	fish := models.SelectedDish{Recipe: models.Recipe{ID: "fish", Calories: 500, Protein: 40, Fat: 18, Carbs: 40}, Portions: 1}

	got := OptimizePortions([]models.SelectedDish{fish}, target)

	want := fish
	want.Totals = models.Nutrients{Calories: 500, Protein: 40, Fat: 18, Carbs: 40}
	require.Equal(t, []models.SelectedDish{want}, got)
	require.Equal(t, models.Nutrients{}, fish.Totals)
}

func TestOptimizePortions_Empty(t *testing.T) {
	require.Empty(t, OptimizePortions(nil, models.Nutrients{Calories: 500}))
}
