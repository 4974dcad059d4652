// Package exporters renders the book and session tables as CSV text,
// used by the settings-page downloads, the export CLI command and the
// snapshot scheduler.
package exporters

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"booktracker/internal/entities"
)

// csvTimestamp is the layout used for exported timestamps. It matches
// what the session importer accepts, so an export re-imports cleanly.
const csvTimestamp = "2006-01-02T15:04:05"

// BooksCSV renders the full book table. The header matches the books
// import format, plus id and added_at.
func BooksCSV(books []entities.Book) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "title", "author", "isbn", "total_pages", "shelf", "added_at"}); err != nil {
		return "", err
	}
	for _, b := range books {
		record := []string{
			strconv.FormatUint(uint64(b.ID), 10),
			b.Title,
			b.Author,
			b.ISBN,
			strconv.Itoa(b.TotalPages),
			string(b.Shelf),
			b.AddedAt.UTC().Format(csvTimestamp),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}

// SessionsCSV renders the full session table joined with book identity.
func SessionsCSV(rows []entities.SessionWithBook) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "book_id", "title", "author", "start_ts", "end_ts", "duration_min", "pages_read", "note"}); err != nil {
		return "", err
	}
	for _, s := range rows {
		record := []string{
			strconv.FormatUint(uint64(s.ID), 10),
			strconv.FormatUint(uint64(s.BookID), 10),
			s.Title,
			s.Author,
			s.StartTS.UTC().Format(csvTimestamp),
			s.EndTS.UTC().Format(csvTimestamp),
			strconv.FormatFloat(s.Duration().Minutes(), 'f', 1, 64),
			strconv.Itoa(s.PagesRead),
			s.Note,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}

// ExportFilename builds a timestamped file name for snapshot exports,
// e.g. "books-2024-03-01.csv".
func ExportFilename(prefix string, at time.Time) string {
	return prefix + "-" + at.UTC().Format("2006-01-02") + ".csv"
}
