package entities

import "time"

type ActivityEventType string

const (
	ActivityEventImport   ActivityEventType = "import"
	ActivityEventExport   ActivityEventType = "export"
	ActivityEventSnapshot ActivityEventType = "snapshot"
)

type ActivityStatus string

const (
	ActivityStatusSuccess ActivityStatus = "success"
	ActivityStatusFailed  ActivityStatus = "failed"
)

// ActivityEvent records a data-movement operation (CSV import, export,
// scheduled snapshot) for the recent-activity view on the settings page.
type ActivityEvent struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	EventType   ActivityEventType `gorm:"index;size:50" json:"event_type"`
	Action      string            `gorm:"size:100" json:"action"`      // e.g. "books_csv_import"
	Description string            `gorm:"size:500" json:"description"` // Human-readable summary
	Metadata    string            `gorm:"type:text" json:"metadata,omitempty"` // JSON for counts
	Status      ActivityStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string            `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time         `gorm:"index" json:"created_at"`
}

func (ActivityEvent) TableName() string {
	return "activity_events"
}
