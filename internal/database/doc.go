// Package database provides the data access layer for the tracker.
//
// The layer is organized into domain-specific sub-packages, each with a
// Repository type around a shared *gorm.DB:
//
//	database/
//	├── database.go      # Connection setup, migrations, sample-data seeding
//	├── books/           # Book CRUD and sorted listing
//	├── sessions/        # Reading session insertion and joined listing
//	├── goals/           # Singleton goals row read/upsert
//	└── activity/        # Import/export activity trail
//
// Every write runs inside a transaction: commit on success, rollback on
// any failure. All queries are parameterized; the only dynamic SQL is
// the ORDER BY column in books.List, restricted to a fixed allow-list.
package database
