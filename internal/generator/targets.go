package generator

import (
	"math"

	"mealbot/internal/models"
)

// slotShares - доля дневной нормы на обязательный приём пищи.
// Оставшиеся 10% не резервируются: цель перекуса считается по фактическому дефициту.
var slotShares = map[models.MealType]float64{
	models.MealBreakfast: 0.30,
	models.MealLunch:     0.35,
	models.MealDinner:    0.25,
}

// SlotTarget возвращает цель КБЖУ для приёма пищи
func SlotTarget(dayTarget models.Nutrients, mealType models.MealType) models.Nutrients {
	return dayTarget.Scale(slotShares[mealType.Kind()])
}

// Веса штрафа за отклонение по каждому макронутриенту
const (
	weightCalories = 1.0
	weightProtein  = 1.5
	weightFat      = 1.2
	weightCarbs    = 1.0
)

// Deviation - взвешенная сумма модулей отклонений факта от цели
func Deviation(target, actual models.Nutrients) float64 {
	return math.Abs(target.Calories-actual.Calories)*weightCalories +
		math.Abs(target.Protein-actual.Protein)*weightProtein +
		math.Abs(target.Fat-actual.Fat)*weightFat +
		math.Abs(target.Carbs-actual.Carbs)*weightCarbs
}

// Границы валидности слота
const (
	calorieBandLow       = 0.90
	calorieBandHigh      = 1.10
	tightCalorieBandLow  = 0.95
	tightCalorieBandHigh = 1.05
	tightBandThreshold   = 700.0 // ккал
	macroBandLow         = 0.85
	macroBandHigh        = 1.15
)

// calorieBand возвращает допустимый диапазон отношения калорий для цели
func calorieBand(targetCalories float64) (float64, float64) {
	if targetCalories < tightBandThreshold {
		return tightCalorieBandLow, tightCalorieBandHigh
	}
	return calorieBandLow, calorieBandHigh
}

// IsSlotValid проверяет, что факт слота попадает в допуски цели.
// Нулевая цель по калориям считается выполненной.
func IsSlotValid(actual, target models.Nutrients) bool {
	if target.Calories <= 0 {
		return true
	}
	lo, hi := calorieBand(target.Calories)
	ratio := actual.Calories / target.Calories
	if ratio < lo || ratio > hi {
		return false
	}
	for _, m := range macros {
		if m.value(target) <= 0 {
			continue
		}
		r := m.value(actual) / m.value(target)
		if r < macroBandLow || r > macroBandHigh {
			return false
		}
	}
	return true
}

// macro - доступ к одному макронутриенту вектора
type macro struct {
	name  string
	value func(models.Nutrients) float64
}

var macros = []macro{
	{"protein", func(n models.Nutrients) float64 { return n.Protein }},
	{"fat", func(n models.Nutrients) float64 { return n.Fat }},
	{"carbs", func(n models.Nutrients) float64 { return n.Carbs }},
}
