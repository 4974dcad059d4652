// Package goals provides database operations for the singleton goals row.
package goals

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"booktracker/internal/entities"
)

// Repository handles the goals row. The table holds at most one row,
// keyed by entities.GoalsID; Upsert keeps it that way.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new goals repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the stored goals, or sensible defaults for the current
// UTC year when no row has been written yet.
func (r *Repository) Get() (*entities.Goals, error) {
	var goals entities.Goals
	err := r.db.First(&goals, entities.GoalsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entities.Goals{
			ID:           entities.GoalsID,
			Year:         time.Now().UTC().Year(),
			DailyMinutes: 30,
			YearlyBooks:  24,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &goals, nil
}

// Upsert writes the goals row, replacing any previous values. Writing
// the same values twice is a no-op beyond the first write.
func (r *Repository) Upsert(year, dailyMinutes, yearlyBooks int) error {
	goals := entities.Goals{
		ID:           entities.GoalsID,
		Year:         year,
		DailyMinutes: dailyMinutes,
		YearlyBooks:  yearlyBooks,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"year", "daily_minutes", "yearly_books"}),
	}).Create(&goals).Error
}
