package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"booktracker/internal/config"
	"booktracker/internal/database"
	"booktracker/internal/database/books"
	"booktracker/internal/database/sessions"
	"booktracker/internal/exporters"
)

// ExportCommand writes the library and session history to CSV files.
type ExportCommand struct {
	DatabasePath string
	OutputDir    string
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the tracker database file")
	fs.StringVar(&cmd.OutputDir, "out", ".", "Directory to write the CSV files into")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Write books-<date>.csv and sessions-<date>.csv into the output directory.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := os.MkdirAll(cmd.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	allBooks, err := books.NewRepository(db.DB).List("")
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}
	allSessions, err := sessions.NewRepository(db.DB).List(0)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	now := time.Now().UTC()

	booksPath := filepath.Join(cmd.OutputDir, exporters.ExportFilename("books", now))
	data, err := exporters.BooksCSV(allBooks)
	if err != nil {
		return fmt.Errorf("failed to render books CSV: %w", err)
	}
	if err := os.WriteFile(booksPath, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", booksPath, err)
	}
	fmt.Printf("Wrote %d books to %s\n", len(allBooks), booksPath)

	sessionsPath := filepath.Join(cmd.OutputDir, exporters.ExportFilename("sessions", now))
	data, err = exporters.SessionsCSV(allSessions)
	if err != nil {
		return fmt.Errorf("failed to render sessions CSV: %w", err)
	}
	if err := os.WriteFile(sessionsPath, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", sessionsPath, err)
	}
	fmt.Printf("Wrote %d sessions to %s\n", len(allSessions), sessionsPath)

	return nil
}
