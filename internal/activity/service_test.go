package activity

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	activityrepo "booktracker/internal/database/activity"
	"booktracker/internal/entities"
)

func setupService(t *testing.T) (*Service, func()) {
	dbPath := "./test_activity_service_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.ActivityEvent{})
	require.NoError(t, err)

	svc := NewService(activityrepo.NewRepository(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return svc, cleanup
}

func TestService_LogImport(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	svc.LogImport("books_csv_import", "Imported 5 books from CSV (2 skipped)", 5, 2, nil)

	events, err := svc.Recent(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entities.ActivityEventImport, events[0].EventType)
	assert.Equal(t, entities.ActivityStatusSuccess, events[0].Status)
	assert.Contains(t, events[0].Metadata, `"imported":5`)
	assert.Contains(t, events[0].Metadata, `"skipped":2`)
}

func TestService_LogImport_Failure(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	svc.LogImport("books_csv_import", "Import failed", 0, 0, errors.New("disk full"))

	events, err := svc.Recent(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entities.ActivityStatusFailed, events[0].Status)
	assert.Equal(t, "disk full", events[0].ErrorMsg)
}

func TestService_LogExport(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	svc.LogExport("books_csv_export", "Exported 12 books as CSV", nil)

	events, err := svc.Recent(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entities.ActivityEventExport, events[0].EventType)
	assert.Equal(t, "Exported 12 books as CSV", events[0].Description)
}

func TestService_LogSnapshot_TruncatesLongErrors(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	svc.LogSnapshot("Snapshot failed", errors.New(strings.Repeat("x", 600)))

	events, err := svc.Recent(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entities.ActivityEventSnapshot, events[0].EventType)
	assert.Len(t, events[0].ErrorMsg, 500)
}
