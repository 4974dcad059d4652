// Package sessions provides database operations for reading sessions.
package sessions

import (
	"errors"

	"gorm.io/gorm"

	"booktracker/internal/entities"
)

var (
	// ErrBookNotFound is returned when a session references a book id
	// that does not exist.
	ErrBookNotFound = errors.New("session references an unknown book")

	// ErrInvalidInterval is returned when end precedes start.
	ErrInvalidInterval = errors.New("session end must not precede its start")

	// ErrNegativePages is returned for a negative pages_read value.
	ErrNegativePages = errors.New("pages read must be zero or positive")
)

// Repository handles all reading session database operations. Sessions
// are insert-only: there are no update operations by design.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sessions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert validates and stores a finished reading session. The owning
// book is checked inside the same transaction so a concurrent book
// delete cannot leave an orphaned session behind.
func (r *Repository) Insert(session *entities.Session) error {
	if session.EndTS.Before(session.StartTS) {
		return ErrInvalidInterval
	}
	if session.PagesRead < 0 {
		return ErrNegativePages
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, session.BookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		return tx.Create(session).Error
	})
}

// List returns sessions joined with their book's title and author,
// newest first. A positive limit caps the result to the N most recent;
// limit <= 0 returns everything.
func (r *Repository) List(limit int) ([]entities.SessionWithBook, error) {
	var rows []entities.SessionWithBook
	query := r.db.Model(&entities.Session{}).
		Select("sessions.*, books.title, books.author").
		Joins("JOIN books ON books.id = sessions.book_id").
		Order("sessions.start_ts DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Scan(&rows).Error
	return rows, err
}

// ListForBook returns all sessions of a single book, newest first.
func (r *Repository) ListForBook(bookID uint) ([]entities.Session, error) {
	var sessions []entities.Session
	err := r.db.Where("book_id = ?", bookID).Order("start_ts DESC").Find(&sessions).Error
	return sessions, err
}

// Count returns the number of logged sessions.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Session{}).Count(&count).Error
	return count, err
}
