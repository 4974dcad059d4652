// Package books provides database operations for the book library.
package books

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"booktracker/internal/entities"
)

// ErrInvalidBook is returned when a book fails validation before a write.
var ErrInvalidBook = errors.New("book requires a non-empty title and author")

// sortColumns is the allow-list for List's order-by column. Anything
// else falls back to title.
var sortColumns = map[string]bool{
	"title":    true,
	"author":   true,
	"added_at": true,
	"shelf":    true,
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all books ordered case-insensitively by the given
// column. Unknown columns sort by title.
func (r *Repository) List(orderBy string) ([]entities.Book, error) {
	column := strings.ToLower(strings.TrimSpace(orderBy))
	if !sortColumns[column] {
		column = "title"
	}

	var books []entities.Book
	err := r.db.Order(fmt.Sprintf("%s COLLATE NOCASE", column)).Find(&books).Error
	return books, err
}

// GetByID returns a single book.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// Insert validates and stores a new book, stamping AddedAt with the
// current UTC time. An unknown shelf defaults to to_read.
func (r *Repository) Insert(book *entities.Book) error {
	if err := normalize(book); err != nil {
		return err
	}
	book.AddedAt = time.Now().UTC()
	return r.db.Create(book).Error
}

// Update rewrites the editable fields of an existing book. AddedAt is
// preserved.
func (r *Repository) Update(book *entities.Book) error {
	if err := normalize(book); err != nil {
		return err
	}
	return r.db.Model(&entities.Book{ID: book.ID}).Updates(map[string]any{
		"title":       book.Title,
		"author":      book.Author,
		"isbn":        book.ISBN,
		"total_pages": book.TotalPages,
		"shelf":       book.Shelf,
	}).Error
}

// Delete removes a book and all sessions referencing it in a single
// transaction.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&entities.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
}

// Count returns the number of books in the library.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

func normalize(book *entities.Book) error {
	book.Title = strings.TrimSpace(book.Title)
	book.Author = strings.TrimSpace(book.Author)
	if book.Title == "" || book.Author == "" {
		return ErrInvalidBook
	}
	if !book.Shelf.Valid() {
		book.Shelf = entities.ShelfToRead
	}
	return nil
}
