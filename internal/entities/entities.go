package entities

import (
	"time"
)

// Shelf is the categorical reading status of a book.
type Shelf string

const (
	ShelfReading  Shelf = "reading"
	ShelfToRead   Shelf = "to_read"
	ShelfFinished Shelf = "finished"
)

// Shelves returns all valid shelves in display order.
func Shelves() []Shelf {
	return []Shelf{ShelfReading, ShelfToRead, ShelfFinished}
}

// Valid reports whether s is one of the known shelves.
func (s Shelf) Valid() bool {
	switch s {
	case ShelfReading, ShelfToRead, ShelfFinished:
		return true
	}
	return false
}

// Label returns a human-readable name for the shelf ("to_read" -> "To Read").
func (s Shelf) Label() string {
	switch s {
	case ShelfReading:
		return "Reading"
	case ShelfToRead:
		return "To Read"
	case ShelfFinished:
		return "Finished"
	}
	return string(s)
}

type Book struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"index;size:512" json:"title"`
	Author     string    `gorm:"index;size:256" json:"author"`
	ISBN       string    `gorm:"size:20" json:"isbn,omitempty"`
	TotalPages int       `json:"total_pages,omitempty"`
	Shelf      Shelf     `gorm:"index;size:20;default:'to_read'" json:"shelf"`
	AddedAt    time.Time `json:"added_at"`

	Sessions []Session `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"sessions,omitempty"`
}

// Session is a single contiguous reading interval. Sessions are written
// once when a reading session is stopped or imported and never updated.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"index" json:"book_id"`
	StartTS   time.Time `gorm:"index" json:"start_ts"`
	EndTS     time.Time `json:"end_ts"`
	PagesRead int       `gorm:"default:0" json:"pages_read"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`

	Book Book `gorm:"foreignKey:BookID" json:"-"`
}

// Duration returns the elapsed reading time of the session.
func (s Session) Duration() time.Duration {
	return s.EndTS.Sub(s.StartTS)
}

// SessionWithBook is a session row joined with its book's identity, as
// returned by the recent-sessions listing and the CSV export.
type SessionWithBook struct {
	Session
	Title  string `json:"title"`
	Author string `json:"author"`
}

// GoalsID is the fixed primary key of the singleton goals row.
const GoalsID = 1

// Goals holds the per-year reading targets. The table contains at most
// one row, keyed by GoalsID.
type Goals struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	Year         int  `json:"year"`
	DailyMinutes int  `gorm:"default:30" json:"daily_minutes"`
	YearlyBooks  int  `gorm:"default:24" json:"yearly_books"`
}

func (Book) TableName() string {
	return "books"
}

func (Session) TableName() string {
	return "sessions"
}

func (Goals) TableName() string {
	return "goals"
}
