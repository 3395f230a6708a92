package models

import (
	"gorm.io/gorm"
)

// NutrientLimits holds each user's daily intake thresholds.
type NutrientLimits struct {
	gorm.Model
	UserID   uint    `gorm:"uniqueIndex;not null" json:"-"`
	Calories float64 `json:"calories"` // kcal
	Protein  float64 `json:"protein"`  // g
	Carbs    float64 `json:"carbs"`    // g
	Fat      float64 `json:"fat"`      // g
	Sugar    float64 `json:"sugar"`    // g
}
