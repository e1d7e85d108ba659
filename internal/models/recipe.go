package models

// RecipeType - тип блюда в каталоге
type RecipeType string

const (
	RecipeBreakfast RecipeType = "breakfast"
	RecipeMain      RecipeType = "main"
	RecipeSalad     RecipeType = "salad"
	RecipeSnack     RecipeType = "snack"
	RecipeDessert   RecipeType = "dessert"
)

// Valid проверяет, что тип известен
func (t RecipeType) Valid() bool {
	switch t {
	case RecipeBreakfast, RecipeMain, RecipeSalad, RecipeSnack, RecipeDessert:
		return true
	}
	return false
}

// NameRu returns Russian name for recipe type
func (t RecipeType) NameRu() string {
	switch t {
	case RecipeBreakfast:
		return "Завтрак"
	case RecipeMain:
		return "Основное блюдо"
	case RecipeSalad:
		return "Салат"
	case RecipeSnack:
		return "Перекус"
	case RecipeDessert:
		return "Десерт"
	default:
		return string(t)
	}
}

// Recipe - рецепт из каталога. КБЖУ указаны на одну порцию.
// Движок только читает рецепты и никогда их не изменяет.
type Recipe struct {
	ID       string     `json:"id" yaml:"id"`
	Name     string     `json:"name" yaml:"name"`
	Type     RecipeType `json:"type" yaml:"type"`
	Category string     `json:"category,omitempty" yaml:"category"` // завтрак, обед, ужин, перекус...
	OwnerID  *int64     `json:"owner_id,omitempty" yaml:"owner_id"` // nil - системный рецепт
	Calories float64    `json:"calories" yaml:"calories"`
	Protein  float64    `json:"protein" yaml:"protein"`
	Fat      float64    `json:"fat" yaml:"fat"`
	Carbs    float64    `json:"carbs" yaml:"carbs"`
}

// PerPortion возвращает КБЖУ одной порции
func (r Recipe) PerPortion() Nutrients {
	return Nutrients{
		Calories: r.Calories,
		Protein:  r.Protein,
		Fat:      r.Fat,
		Carbs:    r.Carbs,
	}
}
