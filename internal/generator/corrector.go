package generator

import (
	"math"

	"mealbot/internal/models"
)

// Коридор калорий дня для финальной коррекции
const (
	dayBandLow  = 0.95
	dayBandHigh = 1.05
)

// CorrectDay двигает порции перекусов по одной, пока калории дня не войдут
// в коридор [95%, 105%] или пока есть что двигать.
// Обязательные приёмы пищи не меняются: они общие для блока из двух дней.
func CorrectDay(day *models.DayPlan) {
	day.Recalculate()
	target := day.Target.Calories
	if target <= 0 {
		return
	}

	for {
		ratio := day.Actual.Calories / target
		var step int
		switch {
		case ratio > dayBandHigh:
			step = -1
		case ratio < dayBandLow:
			step = 1
		default:
			return
		}

		if !stepFiller(day, step) {
			return
		}
	}
}

// stepFiller меняет на step порцию того перекусного блюда, после которого
// калории дня ближе всего к цели. Увеличение не должно выводить день выше 105%.
func stepFiller(day *models.DayPlan, step int) bool {
	target := day.Target.Calories
	bestSlot, bestDish := -1, -1
	bestGap := math.Inf(1)

	for si := range day.Meals {
		slot := &day.Meals[si]
		if slot.Role != models.SlotFiller {
			continue
		}
		for di := range slot.Dishes {
			d := slot.Dishes[di]
			if d.Role != models.RoleFiller {
				continue
			}
			p := d.Portions + step
			if p < models.MinPortions || p > models.MaxPortions {
				continue
			}
			newCalories := day.Actual.Calories + float64(step)*d.Recipe.Calories
			if step > 0 && newCalories > target*dayBandHigh {
				continue
			}
			if gap := math.Abs(target - newCalories); gap < bestGap {
				bestSlot, bestDish, bestGap = si, di, gap
			}
		}
	}

	if bestSlot < 0 {
		return false
	}
	day.Meals[bestSlot].Dishes[bestDish].Portions += step
	day.Recalculate()
	return true
}
