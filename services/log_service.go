package services

import (
	"time"

	"nutrisnap/config"
	"nutrisnap/models"
	"nutrisnap/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Default recency window shown on the log screen.
const DefaultLogLimit = 20

// LogStore is the full log-table contract consumed by the HTTP layer.
// Delete of an id that is already gone must succeed; the store only
// confirms that the entry is absent afterwards.
type LogStore interface {
	LogWriter
	ListRecent(userID uint, limit int) ([]models.FoodLog, error)
	Delete(userID uint, logID uuid.UUID) error
}

// LogService is the adapter over the food_log table. Callers re-read the
// whole recent list after any mutation instead of patching cached copies.
type LogService struct {
	db *gorm.DB
}

func NewLogService(db *gorm.DB) *LogService {
	if db == nil {
		db = config.DB
	}
	return &LogService{db: db}
}

// Insert commits a scaled record as a new log entry. LoggedAt is assigned
// here, at commit time.
func (s *LogService) Insert(userID uint, foodName string, rec utils.ScaledRecord) (*models.FoodLog, error) {
	entry := &models.FoodLog{
		LogID:    uuid.New(),
		UserID:   userID,
		FoodName: foodName,
		Calories: rec.Calories,
		Protein:  rec.Protein,
		Carbs:    rec.Carbs,
		Fat:      rec.Fat,
		Sugar:    rec.Sugar,
		LoggedAt: time.Now(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListRecent returns the user's entries ordered by logged_at descending,
// truncated to limit.
func (s *LogService) ListRecent(userID uint, limit int) ([]models.FoodLog, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	var logs []models.FoodLog
	err := s.db.
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// Delete removes one entry. Deleting an id that is already gone is not an
// error; the refreshed list simply omits it.
func (s *LogService) Delete(userID uint, logID uuid.UUID) error {
	return s.db.
		Where("log_id = ? AND user_id = ?", logID, userID).
		Delete(&models.FoodLog{}).Error
}

// ListBetween returns entries with logged_at inside [from, to] inclusive,
// oldest first. Used by the insights queries to load a whole week in one read.
func (s *LogService) ListBetween(userID uint, from, to time.Time) ([]models.FoodLog, error) {
	var logs []models.FoodLog
	err := s.db.
		Where("user_id = ? AND logged_at BETWEEN ? AND ?", userID, from, to).
		Order("logged_at ASC").
		Find(&logs).Error
	return logs, err
}
