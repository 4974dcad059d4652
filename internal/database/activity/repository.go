// Package activity provides database operations for the activity trail.
package activity

import (
	"time"

	"gorm.io/gorm"

	"booktracker/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an activity event.
func (r *Repository) LogEvent(event *entities.ActivityEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return r.db.Create(event).Error
}

// Recent retrieves the most recent activity events, newest first.
func (r *Repository) Recent(limit int) ([]entities.ActivityEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	var events []entities.ActivityEvent
	err := r.db.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}
