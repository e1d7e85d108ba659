package generator

import (
	"go.uber.org/zap"

	"mealbot/internal/models"
)

// buildBatch строит обязательный приём пищи один раз для блока, который
// начинается с дня dayIndex. Блюда и порции переиспользуются обоими днями блока.
func (g *Generator) buildBatch(mealType models.MealType, recipes []models.Recipe, target models.Nutrients, dayIndex int) ([]models.SelectedDish, bool) {
	slot, ok := g.buildSlot(recipes, mealType, SlotTarget(target, mealType), models.SlotMain, nil)
	if !ok {
		g.logger.Warn("приём пищи пропущен в блоке",
			zap.String("meal_type", string(mealType)),
			zap.Int("day", dayIndex),
		)
		return nil, false
	}
	return slot.Dishes, true
}

// buildBlock заполняет обязательные приёмы пищи для одного или двух дней.
// Каждый день получает собственную копию слота с одинаковыми значениями.
func (g *Generator) buildBlock(recipes []models.Recipe, target models.Nutrients, block []*models.DayPlan) {
	if len(block) == 0 {
		return
	}
	for _, mt := range models.MandatoryMeals {
		dishes, ok := g.buildBatch(mt, recipes, target, block[0].Day)
		if !ok {
			continue
		}
		slot := models.MealSlot{
			MealType: mt,
			Role:     models.SlotMain,
			Dishes:   dishes,
			Target:   SlotTarget(target, mt),
		}
		slot.Recalculate()

		for _, day := range block {
			day.Meals = append(day.Meals, slot.Clone())
		}
	}
}
