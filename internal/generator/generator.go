package generator

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mealbot/internal/models"
)

// Допустимая длина плана
const (
	MinDays = 1
	MaxDays = 90
)

// Request - параметры генерации плана питания
type Request struct {
	DaysCount int
	Target    models.Nutrients // дневная норма
	Recipes   []models.Recipe  // каталог: системные + пользовательские рецепты
}

// Validate проверяет параметры запроса
func (r Request) Validate() error {
	if r.DaysCount < MinDays || r.DaysCount > MaxDays {
		return ValidationError{Field: "days_count", Message: "Количество дней должно быть от 1 до 90"}
	}
	if !r.Target.IsFinite() {
		return ValidationError{Field: "target", Message: "Норма КБЖУ должна быть конечным числом"}
	}
	if r.Target.IsNegative() {
		return ValidationError{Field: "target", Message: "Норма КБЖУ не может быть отрицательной"}
	}
	return nil
}

// Generator - генератор планов питания.
// Не хранит состояния между вызовами, поэтому безопасен для конкурентного использования.
type Generator struct {
	logger *zap.Logger
	now    func() time.Time
}

// New создаёт генератор. nil-логгер заменяется на no-op.
func New(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger, now: time.Now}
}

// Generate строит план питания на DaysCount дней.
// Обязательные приёмы пищи готовятся блоками по два дня, затем в каждый день
// добавляются перекусы и корректируются их порции.
func (g *Generator) Generate(req Request) (*models.MealPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Собственная копия каталога на каждый вызов
	recipes := make([]models.Recipe, len(req.Recipes))
	copy(recipes, req.Recipes)

	if err := checkMandatoryCatalog(recipes, req.Target); err != nil {
		return nil, err
	}

	plan := &models.MealPlan{
		ID:        uuid.New().String(),
		DaysCount: req.DaysCount,
		Target:    req.Target,
		Status:    models.MealPlanDraft,
		CreatedAt: g.now(),
	}

	days := make([]models.DayPlan, req.DaysCount)
	for i := range days {
		days[i] = models.DayPlan{Day: i + 1, Target: req.Target}
	}

	for start := 0; start < len(days); start += 2 {
		block := []*models.DayPlan{&days[start]}
		if start+1 < len(days) {
			block = append(block, &days[start+1])
		}
		g.buildBlock(recipes, req.Target, block)
	}

	for i := range days {
		day := &days[i]
		day.Recalculate()
		g.buildSnacks(day, recipes)
		CorrectDay(day)

		g.logger.Debug("день построен",
			zap.Int("day", day.Day),
			zap.Int("meals", len(day.Meals)),
			zap.Float64("calories", day.Actual.Calories),
			zap.Float64("deviation_pct", day.CalorieDeviation()),
		)
	}

	plan.Days = days
	return plan, nil
}

// checkMandatoryCatalog возвращает ошибку, только если ни один обязательный
// приём пищи нельзя собрать: фильтр пропускает рецепт, но ни основное блюдо,
// ни салат из него не выбираются
func checkMandatoryCatalog(recipes []models.Recipe, dayTarget models.Nutrients) error {
	for _, mt := range models.MandatoryMeals {
		candidates := FilterRecipes(recipes, mt)
		if len(candidates) == 0 {
			continue
		}
		target := SlotTarget(dayTarget, mt)
		if _, ok := PickMain(candidates, mt, target); ok {
			return nil
		}
		if _, ok := PickSide(candidates, mt, target, nil); ok {
			return nil
		}
	}
	return &ConfigurationError{MealTypes: models.MandatoryMeals}
}

// buildSlot собирает один приём пищи: фильтр → основное блюдо → салат → порции.
// exclude - рецепты, которые нельзя выбирать (уже съедены в этот день).
func (g *Generator) buildSlot(recipes []models.Recipe, mealType models.MealType, target models.Nutrients, role models.SlotRole, exclude map[string]bool) (models.MealSlot, bool) {
	candidates := FilterRecipes(recipes, mealType)
	if len(exclude) > 0 {
		kept := make([]models.Recipe, 0, len(candidates))
		for _, r := range candidates {
			if !exclude[r.ID] {
				kept = append(kept, r)
			}
		}
		candidates = kept
	}
	if len(candidates) == 0 {
		g.logger.Warn("нет рецептов для приёма пищи", zap.String("meal_type", string(mealType)))
		return models.MealSlot{}, false
	}

	var dishes []models.SelectedDish
	if main, ok := PickMain(candidates, mealType, target); ok {
		dishes = append(dishes, main)
	}
	if side, ok := PickSide(candidates, mealType, target, dishes); ok {
		dishes = append(dishes, side)
	}
	if len(dishes) == 0 {
		g.logger.Warn("не удалось подобрать блюдо", zap.String("meal_type", string(mealType)))
		return models.MealSlot{}, false
	}

	dishes = OptimizePortions(dishes, target)

	slot := models.MealSlot{
		MealType: mealType,
		Role:     role,
		Dishes:   dishes,
		Target:   target,
	}
	slot.Recalculate()

	if !IsSlotValid(slot.Actual, target) {
		g.logger.Debug("приём пищи вне допуска",
			zap.String("meal_type", string(mealType)),
			zap.Float64("target_kcal", target.Calories),
			zap.Float64("actual_kcal", slot.Actual.Calories),
		)
	}
	return slot, true
}
