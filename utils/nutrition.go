package utils

import (
	"errors"
	"math"
	"strings"
)

// ErrScaleRejected is returned for a serving multiplier that is not a
// positive finite number. Callers should re-prompt instead of committing.
var ErrScaleRejected = errors.New("serving multiplier must be a positive finite number")

const kJPerKcal = 0.239

// NutrientObservation is one raw {name, value, unit} row as returned by
// the food search API.
type NutrientObservation struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// NormalizedNutrients is the canonical five-field record. A nil field means
// the nutrient was not reported; a non-nil zero means reported as zero.
type NormalizedNutrients struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
	Sugar    *float64 `json:"sugar,omitempty"`
}

// ScaledRecord is a normalized record after serving scaling, each field
// rounded to the nearest whole unit.
type ScaledRecord struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Sugar    float64 `json:"sugar"`
}

// Normalize maps raw nutrient observations onto the canonical record.
// Matching is a case-sensitive substring check against the fixed USDA
// vocabulary; observations that match nothing are skipped. Energy reported
// in kJ is converted to kcal. When the same nutrient appears more than
// once the last observation wins.
func Normalize(observations []NutrientObservation) NormalizedNutrients {
	var n NormalizedNutrients
	for _, o := range observations {
		switch {
		case strings.Contains(o.Name, "Protein"):
			n.Protein = ptr(o.Value)
		case strings.Contains(o.Name, "Carbohydrate"):
			n.Carbs = ptr(o.Value)
		case strings.Contains(o.Name, "Total lipid"):
			n.Fat = ptr(o.Value)
		case strings.Contains(o.Name, "Sugars"):
			n.Sugar = ptr(o.Value)
		case strings.Contains(o.Name, "Energy"):
			if o.Unit == "kJ" {
				n.Calories = ptr(o.Value * kJPerKcal)
			} else {
				n.Calories = ptr(o.Value)
			}
		}
	}
	return n
}

// Scale multiplies every field by the serving multiplier and rounds each
// independently, so rounding error never compounds across fields. Absent
// fields scale from zero.
func Scale(n NormalizedNutrients, multiplier float64) (ScaledRecord, error) {
	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) || multiplier <= 0 {
		return ScaledRecord{}, ErrScaleRejected
	}
	scale := func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return math.Round(*v * multiplier)
	}
	return ScaledRecord{
		Calories: scale(n.Calories),
		Protein:  scale(n.Protein),
		Carbs:    scale(n.Carbs),
		Fat:      scale(n.Fat),
		Sugar:    scale(n.Sugar),
	}, nil
}

func ptr(v float64) *float64 { return &v }
