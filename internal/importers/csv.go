// Package importers parses the two tabular (CSV) import formats: one
// row per book and one row per session. Columns are located by header
// name, so column order does not matter and unknown columns are ignored.
package importers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"booktracker/internal/entities"
)

// timestampLayouts are accepted for session start/end values, most
// specific first.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ImportResult summarizes a completed import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ParseBooks reads a books CSV (columns: title, author, isbn,
// total_pages, shelf). Malformed values never drop a row: a missing
// title or author falls back to "Untitled"/"Unknown", an unparsable
// page count becomes 0 and an unknown shelf becomes to_read.
func ParseBooks(r io.Reader) ([]entities.Book, []string, error) {
	records, headerIndex, parseErrors, err := readCSV(r, []string{"title", "author"})
	if err != nil {
		return nil, nil, err
	}

	books := make([]entities.Book, 0, len(records))
	for _, record := range records {
		title := getCSVValue(record, headerIndex, "title")
		if title == "" {
			title = "Untitled"
		}
		author := getCSVValue(record, headerIndex, "author")
		if author == "" {
			author = "Unknown"
		}

		totalPages := 0
		if raw := getCSVValue(record, headerIndex, "total_pages"); raw != "" {
			if pages, err := strconv.Atoi(raw); err == nil && pages > 0 {
				totalPages = pages
			}
		}

		shelf := entities.Shelf(getCSVValue(record, headerIndex, "shelf"))
		if !shelf.Valid() {
			shelf = entities.ShelfToRead
		}

		books = append(books, entities.Book{
			Title:      title,
			Author:     author,
			ISBN:       getCSVValue(record, headerIndex, "isbn"),
			TotalPages: totalPages,
			Shelf:      shelf,
		})
	}

	return books, parseErrors, nil
}

// ParseSessions reads a sessions CSV (columns: book_id, start_ts,
// end_ts, pages_read, note). Unlike books, a session row that fails to
// parse is skipped and reported; valid rows in the same file still
// succeed.
func ParseSessions(r io.Reader) ([]entities.Session, []string, error) {
	records, headerIndex, parseErrors, err := readCSV(r, []string{"book_id", "start_ts", "end_ts"})
	if err != nil {
		return nil, nil, err
	}

	sessions := make([]entities.Session, 0, len(records))
	for i, record := range records {
		lineNum := i + 2 // After the header row

		bookID, err := strconv.ParseUint(getCSVValue(record, headerIndex, "book_id"), 10, 32)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("Line %d: invalid book_id", lineNum))
			continue
		}

		start, err := parseTimestamp(getCSVValue(record, headerIndex, "start_ts"))
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("Line %d: invalid start_ts", lineNum))
			continue
		}

		end, err := parseTimestamp(getCSVValue(record, headerIndex, "end_ts"))
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("Line %d: invalid end_ts", lineNum))
			continue
		}

		if end.Before(start) {
			parseErrors = append(parseErrors, fmt.Sprintf("Line %d: end_ts precedes start_ts", lineNum))
			continue
		}

		pagesRead := 0
		if raw := getCSVValue(record, headerIndex, "pages_read"); raw != "" {
			pages, err := strconv.Atoi(raw)
			if err != nil || pages < 0 {
				parseErrors = append(parseErrors, fmt.Sprintf("Line %d: invalid pages_read", lineNum))
				continue
			}
			pagesRead = pages
		}

		sessions = append(sessions, entities.Session{
			BookID:    uint(bookID),
			StartTS:   start,
			EndTS:     end,
			PagesRead: pagesRead,
			Note:      getCSVValue(record, headerIndex, "note"),
		})
	}

	return sessions, parseErrors, nil
}

// readCSV consumes the reader, validates required headers and returns
// the data records plus a header index map. Rows that fail CSV parsing
// are reported per line, never aborting the file.
func readCSV(r io.Reader, requiredHeaders []string) ([][]string, map[string]int, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for _, h := range requiredHeaders {
		if _, ok := headerIndex[h]; !ok {
			return nil, nil, nil, fmt.Errorf("missing required header: %s", h)
		}
	}

	var records [][]string
	var errors []string
	lineNum := 1 // Start at 1 because we already read the header

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errors = append(errors, fmt.Sprintf("Line %d: %v", lineNum, err))
			continue
		}
		records = append(records, record)
	}

	return records, headerIndex, errors, nil
}

func getCSVValue(record []string, headerIndex map[string]int, header string) string {
	if idx, ok := headerIndex[header]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
