package catalog

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"mealbot/internal/models"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"recipes.json", FormatJSON, false},
		{"recipes.YAML", FormatYAML, false},
		{"dir/recipes.yml", FormatYAML, false},
		{"recipes.csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFileYAML(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	recipes, err := LoadFile("testdata/recipes.yaml", zap.New(core))
	require.NoError(t, err)
	require.Len(t, recipes, 5)
	require.Equal(t, "oats", recipes[0].ID)
	require.Equal(t, models.RecipeMain, recipes[1].Type)
	require.Equal(t, "обед", recipes[1].Category)
	require.Equal(t, 45.0, recipes[1].Protein)
	require.Nil(t, recipes[0].OwnerID)

	// Рецепт с неизвестным типом отброшен с предупреждением
	require.Equal(t, 1, logs.FilterMessage("рецепт пропущен").Len())
}

func TestLoadFileJSON(t *testing.T) {
	recipes, err := LoadFile("testdata/recipes.json", nil)
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	// Тип нормализован, ID сгенерирован
	require.Equal(t, models.RecipeBreakfast, recipes[1].Type)
	require.NotEmpty(t, recipes[1].ID)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/missing.json", nil)
	require.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("{"), FormatJSON, nil)
	require.Error(t, err)

	_, err = Parse([]byte("recipes: ["), FormatYAML, nil)
	require.Error(t, err)

	_, err = Parse([]byte("{}"), Format("xml"), nil)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		recipe models.Recipe
		keep   bool
	}{
		{"valid", models.Recipe{ID: "a", Name: "Суп", Type: models.RecipeMain, Calories: 200}, true},
		{"empty name", models.Recipe{ID: "b", Name: "  ", Type: models.RecipeMain, Calories: 200}, false},
		{"unknown type", models.Recipe{ID: "c", Name: "Суп", Type: "soup", Calories: 200}, false},
		{"negative fat", models.Recipe{ID: "d", Name: "Суп", Type: models.RecipeMain, Calories: 200, Fat: -3}, false},
		{"zero calories", models.Recipe{ID: "e", Name: "Вода", Type: models.RecipeSnack}, false},
		{"NaN protein", models.Recipe{ID: "f", Name: "Суп", Type: models.RecipeMain, Calories: 200, Protein: math.NaN()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate([]models.Recipe{tt.recipe}, nil)
			if tt.keep {
				require.Len(t, got, 1)
			} else {
				require.Empty(t, got)
			}
		})
	}
}

func TestValidateDuplicateIDs(t *testing.T) {
	recipes := []models.Recipe{
		{ID: "x", Name: "Первый", Type: models.RecipeSnack, Calories: 100},
		{ID: "x", Name: "Второй", Type: models.RecipeSnack, Calories: 120},
	}

	got := Validate(recipes, nil)
	require.Len(t, got, 1)
	require.Equal(t, "Первый", got[0].Name)
}

func TestValidateStableIDs(t *testing.T) {
	data := []byte(`
recipes:
  - name: Сырники
    type: breakfast
    calories: 350
  - name: Сырники
    type: dessert
    calories: 350
`)
	first, err := Parse(data, FormatYAML, nil)
	require.NoError(t, err)
	second, err := Parse(data, FormatYAML, nil)
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Equal(t, first[0].ID, second[0].ID)
	require.Equal(t, first[1].ID, second[1].ID)
	require.NotEqual(t, first[0].ID, first[1].ID)

	owner := int64(42)
	owned := Validate([]models.Recipe{{Name: "Сырники", Type: models.RecipeBreakfast, Calories: 350, OwnerID: &owner}}, nil)
	require.Len(t, owned, 1)
	require.NotEqual(t, first[0].ID, owned[0].ID)
}

func TestStaticListForOwner(t *testing.T) {
	alice, bob := int64(1), int64(2)
	s := Static{
		{ID: "sys", Name: "Системный", Type: models.RecipeMain, Calories: 100},
		{ID: "a", Name: "Алисин", Type: models.RecipeMain, Calories: 100, OwnerID: &alice},
		{ID: "b", Name: "Бобов", Type: models.RecipeMain, Calories: 100, OwnerID: &bob},
	}

	got, err := s.ListForOwner(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "sys", got[0].ID)
	require.Equal(t, "a", got[1].ID)
}
