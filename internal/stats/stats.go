// Package stats computes derived reading statistics. Every function is
// a pure reduction over rows already loaded from the database; nothing
// here persists state.
package stats

import (
	"sort"
	"time"

	"booktracker/internal/entities"
)

// MonthlyBucket aggregates the sessions whose start falls in one
// calendar month.
type MonthlyBucket struct {
	Month time.Time `json:"month"` // First instant of the month, UTC
	Pages int       `json:"pages"`
	Hours float64   `json:"hours"`
}

// Summary bundles the headline numbers for the stats view.
type Summary struct {
	TotalBooks   int                    `json:"total_books"`
	ShelfCounts  map[entities.Shelf]int `json:"shelf_counts"`
	TotalHours   float64                `json:"total_hours"`
	TotalPages   int                    `json:"total_pages"`
	SessionCount int                    `json:"session_count"`
}

// TotalHours sums the duration of all sessions, in hours.
func TotalHours(sessions []entities.SessionWithBook) float64 {
	var total time.Duration
	for _, s := range sessions {
		total += s.Duration()
	}
	return total.Hours()
}

// TotalPages sums pages read across all sessions.
func TotalPages(sessions []entities.SessionWithBook) int {
	total := 0
	for _, s := range sessions {
		total += s.PagesRead
	}
	return total
}

// ShelfCounts counts books per shelf. Every known shelf is present in
// the result, with zero for empty shelves.
func ShelfCounts(books []entities.Book) map[entities.Shelf]int {
	counts := make(map[entities.Shelf]int, 3)
	for _, shelf := range entities.Shelves() {
		counts[shelf] = 0
	}
	for _, b := range books {
		counts[b.Shelf]++
	}
	return counts
}

// MinutesOn sums the minutes of sessions whose start falls on the same
// UTC date as day.
func MinutesOn(sessions []entities.SessionWithBook, day time.Time) float64 {
	y, m, d := day.UTC().Date()
	var total time.Duration
	for _, s := range sessions {
		sy, sm, sd := s.StartTS.UTC().Date()
		if sy == y && sm == m && sd == d {
			total += s.Duration()
		}
	}
	return total.Minutes()
}

// Monthly groups sessions by the calendar month of their start and
// returns chronologically sorted buckets of pages and hours. The sum of
// bucket pages always equals TotalPages over the same sessions.
func Monthly(sessions []entities.SessionWithBook) []MonthlyBucket {
	byMonth := make(map[time.Time]*MonthlyBucket)
	for _, s := range sessions {
		start := s.StartTS.UTC()
		month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		bucket, ok := byMonth[month]
		if !ok {
			bucket = &MonthlyBucket{Month: month}
			byMonth[month] = bucket
		}
		bucket.Pages += s.PagesRead
		bucket.Hours += s.Duration().Hours()
	}

	buckets := make([]MonthlyBucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month.Before(buckets[j].Month)
	})
	return buckets
}

// Summarize combines the headline reductions for the stats page.
func Summarize(books []entities.Book, sessions []entities.SessionWithBook) Summary {
	return Summary{
		TotalBooks:   len(books),
		ShelfCounts:  ShelfCounts(books),
		TotalHours:   TotalHours(sessions),
		TotalPages:   TotalPages(sessions),
		SessionCount: len(sessions),
	}
}

// FinishedBooks counts books on the finished shelf.
func FinishedBooks(books []entities.Book) int {
	count := 0
	for _, b := range books {
		if b.Shelf == entities.ShelfFinished {
			count++
		}
	}
	return count
}
