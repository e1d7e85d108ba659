package generator

import (
	"sort"

	"mealbot/internal/models"
)

// maxOptimizeIterations - жёсткий предел итераций локального поиска
const maxOptimizeIterations = 50

// OptimizePortions подбирает целые порции блюд слота так, чтобы уменьшить
// взвешенное отклонение от цели. Исходный срез не изменяется.
// Возвращается лучшая конфигурация из встреченных за все итерации.
func OptimizePortions(dishes []models.SelectedDish, target models.Nutrients) []models.SelectedDish {
	current := make([]models.SelectedDish, len(dishes))
	copy(current, dishes)
	for i := range current {
		current[i].Portions = clampPortions(current[i].Portions)
	}
	if len(current) == 0 {
		return current
	}

	currentScore := Deviation(target, models.SumDishes(current))
	best := cloneDishes(current)
	bestScore := currentScore

	for iter := 0; iter < maxOptimizeIterations; iter++ {
		if IsSlotValid(models.SumDishes(current), target) {
			break
		}

		next, score, ok := rebalanceMacro(current, target, currentScore)
		if !ok {
			next, score, ok = adjustCalories(current, target, currentScore)
		}
		if !ok {
			// Локальный оптимум: ни один шаг не улучшает штраф
			break
		}

		current, currentScore = next, score
		if currentScore < bestScore {
			best = cloneDishes(current)
			bestScore = currentScore
		}
	}

	models.AnnotateTotals(best)
	return best
}

// rebalanceMacro тянет к коридору [0.85, 1.15] макронутриент, сильнее всего
// из него выбившийся. Порция меняется у блюда, самого богатого этим нутриентом.
func rebalanceMacro(dishes []models.SelectedDish, target models.Nutrients, score float64) ([]models.SelectedDish, float64, bool) {
	total := models.SumDishes(dishes)

	var worst *macro
	var worstGap float64
	var increase bool
	for i := range macros {
		m := &macros[i]
		t := m.value(target)
		if t <= 0 {
			continue
		}
		ratio := m.value(total) / t
		switch {
		case ratio < macroBandLow && macroBandLow-ratio > worstGap:
			worst, worstGap, increase = m, macroBandLow-ratio, true
		case ratio > macroBandHigh && ratio-macroBandHigh > worstGap:
			worst, worstGap, increase = m, ratio-macroBandHigh, false
		}
	}
	if worst == nil {
		return nil, 0, false
	}

	for _, idx := range richestFirst(dishes, *worst) {
		step := -1
		if increase {
			step = 1
		}
		next, ok := stepPortion(dishes, idx, step)
		if !ok {
			continue
		}
		nextScore := Deviation(target, models.SumDishes(next))
		if nextScore < score {
			return next, nextScore, true
		}
	}
	return nil, 0, false
}

// adjustCalories добавляет или убирает порцию у блюда, которое лучше всего
// снижает штраф: добавляет при недоборе калорий, убирает при переборе.
func adjustCalories(dishes []models.SelectedDish, target models.Nutrients, score float64) ([]models.SelectedDish, float64, bool) {
	total := models.SumDishes(dishes)

	var step int
	switch {
	case total.Calories < target.Calories:
		step = 1
	case total.Calories > target.Calories:
		step = -1
	default:
		return nil, 0, false
	}

	var best []models.SelectedDish
	bestScore := score
	for i := range dishes {
		next, ok := stepPortion(dishes, i, step)
		if !ok {
			continue
		}
		nextScore := Deviation(target, models.SumDishes(next))
		if nextScore < bestScore {
			best, bestScore = next, nextScore
		}
	}
	if best == nil {
		return nil, 0, false
	}
	return best, bestScore, true
}

// stepPortion возвращает копию блюд с изменённой порцией idx-го блюда,
// если новая порция остаётся в [1, 5]
func stepPortion(dishes []models.SelectedDish, idx, step int) ([]models.SelectedDish, bool) {
	p := dishes[idx].Portions + step
	if p < models.MinPortions || p > models.MaxPortions {
		return nil, false
	}
	next := cloneDishes(dishes)
	next[idx].Portions = p
	return next, true
}

// richestFirst возвращает индексы блюд по убыванию содержания нутриента на порцию
func richestFirst(dishes []models.SelectedDish, m macro) []int {
	idx := make([]int, len(dishes))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return m.value(dishes[idx[a]].Recipe.PerPortion()) > m.value(dishes[idx[b]].Recipe.PerPortion())
	})
	return idx
}

func cloneDishes(dishes []models.SelectedDish) []models.SelectedDish {
	out := make([]models.SelectedDish, len(dishes))
	copy(out, dishes)
	return out
}
