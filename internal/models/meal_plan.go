package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// MealType - приём пищи. Перекусы нумеруются: snack1, snack2...
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MandatoryMeals - обязательные приёмы пищи в порядке следования
var MandatoryMeals = []MealType{MealBreakfast, MealLunch, MealDinner}

// SnackMeal возвращает тип n-го перекуса (с единицы)
func SnackMeal(n int) MealType {
	return MealType(fmt.Sprintf("%s%d", MealSnack, n))
}

// Kind возвращает базовый тип приёма пищи (snack3 -> snack)
func (m MealType) Kind() MealType {
	if strings.HasPrefix(string(m), string(MealSnack)) {
		return MealSnack
	}
	return m
}

// NameRu returns Russian name for meal type
func (m MealType) NameRu() string {
	switch m.Kind() {
	case MealBreakfast:
		return "Завтрак"
	case MealLunch:
		return "Обед"
	case MealDinner:
		return "Ужин"
	case MealSnack:
		if n := strings.TrimPrefix(string(m), string(MealSnack)); n != "" {
			return "Перекус " + n
		}
		return "Перекус"
	default:
		return string(m)
	}
}

// DishRole - роль блюда в приёме пищи
type DishRole string

const (
	RoleMain   DishRole = "MAIN"
	RoleSide   DishRole = "SIDE"
	RoleFiller DishRole = "FILLER"
)

// Порции блюда всегда целые в диапазоне [MinPortions, MaxPortions]
const (
	MinPortions = 1
	MaxPortions = 5
)

// MaxMealsPerDay - не больше шести приёмов пищи в день
const MaxMealsPerDay = 6

// SelectedDish - выбранный рецепт с собственным счётчиком порций.
// Рецепт хранится по значению, поэтому изменение порций не затрагивает каталог.
// Totals проставляется после подбора порций и при пересчёте слота.
type SelectedDish struct {
	Recipe   Recipe    `json:"recipe"`
	Portions int       `json:"portions"`
	Role     DishRole  `json:"role"`
	Totals   Nutrients `json:"totals"`
}

// CalcTotals возвращает КБЖУ блюда с учётом порций
func (d SelectedDish) CalcTotals() Nutrients {
	return d.Recipe.PerPortion().Scale(float64(d.Portions))
}

// AnnotateTotals проставляет итоговое КБЖУ каждому блюду
func AnnotateTotals(dishes []SelectedDish) {
	for i := range dishes {
		dishes[i].Totals = dishes[i].CalcTotals()
	}
}

// SumDishes суммирует КБЖУ списка блюд
func SumDishes(dishes []SelectedDish) Nutrients {
	var total Nutrients
	for _, d := range dishes {
		total = total.Add(d.CalcTotals())
	}
	return total
}

// SlotRole - роль приёма пищи в дне
type SlotRole string

const (
	SlotMain   SlotRole = "MAIN"
	SlotFiller SlotRole = "FILLER"
)

// MealSlot - один приём пищи
type MealSlot struct {
	MealType MealType       `json:"meal_type"`
	Role     SlotRole       `json:"role"`
	Dishes   []SelectedDish `json:"dishes"`
	Target   Nutrients      `json:"target"`
	Actual   Nutrients      `json:"actual"`
}

// Recalculate пересчитывает фактическое КБЖУ по блюдам
func (s *MealSlot) Recalculate() {
	AnnotateTotals(s.Dishes)
	s.Actual = SumDishes(s.Dishes)
}

// Clone возвращает копию слота с собственным списком блюд
func (s MealSlot) Clone() MealSlot {
	c := s
	c.Dishes = append([]SelectedDish(nil), s.Dishes...)
	return c
}

// DayPlan - план на один день
type DayPlan struct {
	Day    int        `json:"day"` // с единицы
	Meals  []MealSlot `json:"meals"`
	Target Nutrients  `json:"target"`
	Actual Nutrients  `json:"actual"`
}

// Recalculate пересчитывает фактическое КБЖУ дня по слотам
func (d *DayPlan) Recalculate() {
	var total Nutrients
	for i := range d.Meals {
		d.Meals[i].Recalculate()
		total = total.Add(d.Meals[i].Actual)
	}
	d.Actual = total
}

// CalorieDeviation возвращает отклонение калорий от цели в процентах
func (d DayPlan) CalorieDeviation() float64 {
	if d.Target.Calories <= 0 {
		return 0
	}
	return (d.Actual.Calories - d.Target.Calories) / d.Target.Calories * 100
}

// MealPlanStatus - статус плана питания
type MealPlanStatus string

const (
	MealPlanDraft    MealPlanStatus = "draft"
	MealPlanActive   MealPlanStatus = "active"
	MealPlanArchived MealPlanStatus = "archived"
)

// Valid проверяет, что статус известен
func (s MealPlanStatus) Valid() bool {
	switch s {
	case MealPlanDraft, MealPlanActive, MealPlanArchived:
		return true
	}
	return false
}

// MealPlan - сгенерированный план питания
type MealPlan struct {
	ID        string         `json:"id"`
	DaysCount int            `json:"days_count"`
	Target    Nutrients      `json:"target"`
	Days      []DayPlan      `json:"days"`
	Status    MealPlanStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

// PlanSummary - сводка точности плана
type PlanSummary struct {
	AvgCalorieDeviation float64 `json:"avg_calorie_deviation"` // средний модуль отклонения, %
	DaysWithinBand      int     `json:"days_within_band"`      // дней в пределах ±5%
	SnackCount          int     `json:"snack_count"`
}

// DayBandPercent - допуск по калориям для дня
const DayBandPercent = 5.0

// Summary считает сводку по дням плана
func (p *MealPlan) Summary() PlanSummary {
	var s PlanSummary
	if len(p.Days) == 0 {
		return s
	}
	var sum float64
	for _, d := range p.Days {
		dev := math.Abs(d.CalorieDeviation())
		sum += dev
		if dev <= DayBandPercent {
			s.DaysWithinBand++
		}
		for _, m := range d.Meals {
			if m.MealType.Kind() == MealSnack {
				s.SnackCount++
			}
		}
	}
	s.AvgCalorieDeviation = math.Round(sum/float64(len(p.Days))*10) / 10
	return s
}
