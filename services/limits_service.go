package services

import (
	"errors"
	"fmt"

	"nutrisnap/config"
	"nutrisnap/models"

	"gorm.io/gorm"
)

// Defaults seeded for a user who has never saved limits.
var defaultLimits = models.NutrientLimits{
	Calories: 2500,
	Protein:  150,
	Carbs:    300,
	Fat:      70,
	Sugar:    50,
}

type LimitsService struct {
	db *gorm.DB
}

func NewLimitsService(db *gorm.DB) *LimitsService {
	if db == nil {
		db = config.DB
	}
	return &LimitsService{db: db}
}

// Get returns the user's limits, seeding the defaults on first access so
// the aggregators always have positive thresholds to compare against.
func (s *LimitsService) Get(userID uint) (*models.NutrientLimits, error) {
	var limits models.NutrientLimits
	err := s.db.Where("user_id = ?", userID).First(&limits).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		limits = defaultLimits
		limits.UserID = userID
		if err := s.db.Create(&limits).Error; err != nil {
			return nil, err
		}
		return &limits, nil
	}
	if err != nil {
		return nil, err
	}
	return &limits, nil
}

// Upsert replaces all five limits in one explicit save.
func (s *LimitsService) Upsert(userID uint, calories, protein, carbs, fat, sugar float64) (*models.NutrientLimits, error) {
	for name, v := range map[string]float64{
		"calories": calories, "protein": protein, "carbs": carbs, "fat": fat, "sugar": sugar,
	} {
		if v <= 0 {
			return nil, fmt.Errorf("%s limit must be positive", name)
		}
	}

	var limits models.NutrientLimits
	err := s.db.Where("user_id = ?", userID).First(&limits).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		limits = models.NutrientLimits{
			UserID:   userID,
			Calories: calories,
			Protein:  protein,
			Carbs:    carbs,
			Fat:      fat,
			Sugar:    sugar,
		}
		if err := s.db.Create(&limits).Error; err != nil {
			return nil, err
		}
		return &limits, nil
	}
	if err != nil {
		return nil, err
	}

	limits.Calories = calories
	limits.Protein = protein
	limits.Carbs = carbs
	limits.Fat = fat
	limits.Sugar = sugar

	if err := s.db.Save(&limits).Error; err != nil {
		return nil, err
	}
	return &limits, nil
}
