package models

import (
	"time"

	"github.com/google/uuid"
)

// One committed food record. Nutrient values are whole units,
// rounded once at commit time.
type FoodLog struct {
	LogID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"log_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	FoodName  string    `gorm:"not null" json:"food_name"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	Sugar     float64   `json:"sugar"`
	LoggedAt  time.Time `gorm:"index;not null" json:"logged_at"`
	CreatedAt time.Time `json:"-"`
}
