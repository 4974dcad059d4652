package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"booktracker/internal/activity"
	"booktracker/internal/exporters"
	"booktracker/internal/importers"
)

type SettingsController struct {
	books        BookStore
	sessions     SessionStore
	activity     *activity.Service
	databasePath string

	snapshotEnabled  bool
	snapshotSchedule string
	snapshotDir      string
}

func NewSettingsController(books BookStore, sessions SessionStore, activitySvc *activity.Service, cfg RouterConfig) *SettingsController {
	return &SettingsController{
		books:            books,
		sessions:         sessions,
		activity:         activitySvc,
		databasePath:     cfg.DatabasePath,
		snapshotEnabled:  cfg.SnapshotEnabled,
		snapshotSchedule: cfg.SnapshotSchedule,
		snapshotDir:      cfg.SnapshotDir,
	}
}

// SettingsPage renders the data-management view: storage path, export
// links, import forms and the recent activity trail.
func (ctrl *SettingsController) SettingsPage(c *gin.Context) {
	recent, err := ctrl.activity.Recent(20)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading activity: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "settings", pageData(c, gin.H{
		"DatabasePath":     ctrl.databasePath,
		"SnapshotEnabled":  ctrl.snapshotEnabled,
		"SnapshotSchedule": ctrl.snapshotSchedule,
		"SnapshotDir":      ctrl.snapshotDir,
		"RecentActivity":   recent,
	}))
}

// --- Export downloads ---

// ExportBooks streams the full book table as CSV.
func (ctrl *SettingsController) ExportBooks(c *gin.Context) {
	allBooks, err := ctrl.books.List("title")
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	content, err := exporters.BooksCSV(allBooks)
	ctrl.activity.LogExport("books_csv_export", fmt.Sprintf("Exported %d books as CSV", len(allBooks)), err)
	if err != nil {
		respondInternalError(c, err, "export books")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="books_export.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.String(http.StatusOK, content)
}

// ExportSessions streams the full session table, joined with book
// identity, as CSV.
func (ctrl *SettingsController) ExportSessions(c *gin.Context) {
	rows, err := ctrl.sessions.List(0)
	if err != nil {
		respondInternalError(c, err, "list sessions")
		return
	}

	content, err := exporters.SessionsCSV(rows)
	ctrl.activity.LogExport("sessions_csv_export", fmt.Sprintf("Exported %d sessions as CSV", len(rows)), err)
	if err != nil {
		respondInternalError(c, err, "export sessions")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sessions_export.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.String(http.StatusOK, content)
}

// --- Import uploads ---

// ImportBooks inserts every row of an uploaded books CSV. Rows are
// never rejected: missing fields fall back to placeholder values.
func (ctrl *SettingsController) ImportBooks(c *gin.Context) {
	file, _, err := c.Request.FormFile("csv_file")
	if err != nil {
		redirectWithError(c, "/settings", "No CSV file provided.")
		return
	}
	defer file.Close()

	parsed, parseErrors, err := importers.ParseBooks(file)
	if err != nil {
		redirectWithError(c, "/settings", "Failed to parse CSV: "+err.Error())
		return
	}

	result := importers.ImportResult{Skipped: len(parseErrors), Errors: parseErrors}
	for i := range parsed {
		if err := ctrl.books.Insert(&parsed[i]); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%q: %v", parsed[i].Title, err))
			continue
		}
		result.Imported++
	}

	ctrl.activity.LogImport("books_csv_import",
		fmt.Sprintf("Imported %d books from CSV (%d skipped)", result.Imported, result.Skipped),
		result.Imported, result.Skipped, nil)

	redirectWithMessage(c, "/settings", fmt.Sprintf("Imported %d books.", result.Imported))
}

// ImportSessions inserts the valid rows of an uploaded sessions CSV. A
// row that fails to parse, or that references an unknown book, is
// skipped and counted; the rest of the file still imports.
func (ctrl *SettingsController) ImportSessions(c *gin.Context) {
	file, _, err := c.Request.FormFile("csv_file")
	if err != nil {
		redirectWithError(c, "/settings", "No CSV file provided.")
		return
	}
	defer file.Close()

	parsed, parseErrors, err := importers.ParseSessions(file)
	if err != nil {
		redirectWithError(c, "/settings", "Failed to parse CSV: "+err.Error())
		return
	}

	result := importers.ImportResult{Skipped: len(parseErrors), Errors: parseErrors}
	for i := range parsed {
		if err := ctrl.sessions.Insert(&parsed[i]); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("book %d: %v", parsed[i].BookID, err))
			continue
		}
		result.Imported++
	}

	ctrl.activity.LogImport("sessions_csv_import",
		fmt.Sprintf("Imported %d sessions from CSV (%d skipped)", result.Imported, result.Skipped),
		result.Imported, result.Skipped, nil)

	redirectWithMessage(c, "/settings", fmt.Sprintf("Imported %d sessions (%d skipped).", result.Imported, result.Skipped))
}
