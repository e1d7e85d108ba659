package models

import "math"

// Nutrients - вектор КБЖУ (ккал, белки, жиры, углеводы)
type Nutrients struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Fat      float64 `json:"fat" yaml:"fat"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
}

// Add возвращает сумму векторов
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Fat:      n.Fat + o.Fat,
		Carbs:    n.Carbs + o.Carbs,
	}
}

// Sub возвращает разность векторов
func (n Nutrients) Sub(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories - o.Calories,
		Protein:  n.Protein - o.Protein,
		Fat:      n.Fat - o.Fat,
		Carbs:    n.Carbs - o.Carbs,
	}
}

// Scale умножает каждую компоненту на k
func (n Nutrients) Scale(k float64) Nutrients {
	return Nutrients{
		Calories: n.Calories * k,
		Protein:  n.Protein * k,
		Fat:      n.Fat * k,
		Carbs:    n.Carbs * k,
	}
}

// ClampZero заменяет отрицательные компоненты нулём
func (n Nutrients) ClampZero() Nutrients {
	return Nutrients{
		Calories: math.Max(n.Calories, 0),
		Protein:  math.Max(n.Protein, 0),
		Fat:      math.Max(n.Fat, 0),
		Carbs:    math.Max(n.Carbs, 0),
	}
}

// IsNegative сообщает, есть ли хотя бы одна отрицательная компонента
func (n Nutrients) IsNegative() bool {
	return n.Calories < 0 || n.Protein < 0 || n.Fat < 0 || n.Carbs < 0
}

// IsFinite сообщает, что ни одна компонента не NaN и не бесконечность
func (n Nutrients) IsFinite() bool {
	for _, v := range []float64{n.Calories, n.Protein, n.Fat, n.Carbs} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Round округляет компоненты до одного знака после запятой
func (n Nutrients) Round() Nutrients {
	r := func(v float64) float64 { return math.Round(v*10) / 10 }
	return Nutrients{
		Calories: r(n.Calories),
		Protein:  r(n.Protein),
		Fat:      r(n.Fat),
		Carbs:    r(n.Carbs),
	}
}
