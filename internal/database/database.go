package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"booktracker/internal/entities"
)

var sampleBooks = []entities.Book{
	{Title: "Atomic Habits", Author: "James Clear", ISBN: "9780735211292", TotalPages: 320, Shelf: entities.ShelfReading},
	{Title: "Project Hail Mary", Author: "Andy Weir", ISBN: "9780593135204", TotalPages: 496, Shelf: entities.ShelfToRead},
	{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", ISBN: "9780201616224", TotalPages: 352, Shelf: entities.ShelfFinished},
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (creating if necessary) the tracker database at
// dbPath and runs migrations. Pass seed=true to insert illustrative
// rows into empty tables.
func NewDatabase(dbPath string, seed bool) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Session{},
		&entities.Goals{},
		&entities.ActivityEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if seed {
		if err := database.seedSampleData(); err != nil {
			return nil, fmt.Errorf("failed to seed sample data: %w", err)
		}
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedSampleData populates empty tables with a handful of rows so a
// fresh install has something to show. Tables that already hold data
// are left untouched.
func (d *Database) seedSampleData() error {
	now := time.Now().UTC()

	var bookCount int64
	if err := d.DB.Model(&entities.Book{}).Count(&bookCount).Error; err != nil {
		return err
	}
	if bookCount == 0 {
		for i := range sampleBooks {
			book := sampleBooks[i]
			book.AddedAt = now
			if err := d.DB.Create(&book).Error; err != nil {
				return fmt.Errorf("failed to create sample book %q: %w", book.Title, err)
			}
		}
		log.Printf("Seeded %d sample books", len(sampleBooks))
	}

	var sessionCount int64
	if err := d.DB.Model(&entities.Session{}).Count(&sessionCount).Error; err != nil {
		return err
	}
	if sessionCount == 0 {
		var book entities.Book
		err := d.DB.Where("title = ?", sampleBooks[0].Title).First(&book).Error
		if err == nil {
			session := entities.Session{
				BookID:    book.ID,
				StartTS:   now.Add(-time.Hour),
				EndTS:     now,
				PagesRead: 25,
				Note:      "Morning session",
			}
			if err := d.DB.Create(&session).Error; err != nil {
				return fmt.Errorf("failed to create sample session: %w", err)
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
	}

	var goalsCount int64
	if err := d.DB.Model(&entities.Goals{}).Count(&goalsCount).Error; err != nil {
		return err
	}
	if goalsCount == 0 {
		goals := entities.Goals{
			ID:           entities.GoalsID,
			Year:         now.Year(),
			DailyMinutes: 30,
			YearlyBooks:  24,
		}
		if err := d.DB.Create(&goals).Error; err != nil {
			return fmt.Errorf("failed to create default goals: %w", err)
		}
	}

	return nil
}
