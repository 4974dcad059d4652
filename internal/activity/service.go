// Package activity provides high-level logging of data-movement events
// (imports, exports, snapshots) shown on the settings page.
package activity

import (
	"encoding/json"
	"log"

	"booktracker/internal/database/activity"
	"booktracker/internal/entities"
)

// Service wraps the activity repository with event constructors.
type Service struct {
	repo *activity.Repository
}

func NewService(repo *activity.Repository) *Service {
	return &Service{repo: repo}
}

// Recent returns the newest events for display.
func (s *Service) Recent(limit int) ([]entities.ActivityEvent, error) {
	return s.repo.Recent(limit)
}

// LogImport records a CSV import, with imported/skipped counts in the
// event metadata.
func (s *Service) LogImport(action, description string, imported, skipped int, err error) {
	event := &entities.ActivityEvent{
		EventType:   entities.ActivityEventImport,
		Action:      action,
		Description: description,
		Status:      entities.ActivityStatusSuccess,
	}

	metadata := map[string]any{
		"imported": imported,
		"skipped":  skipped,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.ActivityStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.log(event)
}

// LogExport records a CSV export or download.
func (s *Service) LogExport(action, description string, err error) {
	event := &entities.ActivityEvent{
		EventType:   entities.ActivityEventExport,
		Action:      action,
		Description: description,
		Status:      entities.ActivityStatusSuccess,
	}

	if err != nil {
		event.Status = entities.ActivityStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.log(event)
}

// LogSnapshot records a scheduled snapshot run.
func (s *Service) LogSnapshot(description string, err error) {
	event := &entities.ActivityEvent{
		EventType:   entities.ActivityEventSnapshot,
		Action:      "csv_snapshot",
		Description: description,
		Status:      entities.ActivityStatusSuccess,
	}

	if err != nil {
		event.Status = entities.ActivityStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.log(event)
}

func (s *Service) log(event *entities.ActivityEvent) {
	if err := s.repo.LogEvent(event); err != nil {
		log.Printf("Failed to log activity event: %v", err)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
