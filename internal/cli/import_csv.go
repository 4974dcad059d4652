// Package cli implements the command-line subcommands dispatched from
// main.go: CSV import and export against the tracker database.
package cli

import (
	"flag"
	"fmt"
	"os"

	"booktracker/internal/config"
	"booktracker/internal/database"
	"booktracker/internal/database/books"
	"booktracker/internal/database/sessions"
	"booktracker/internal/importers"
)

// ImportBooksCommand imports a books CSV into the database.
type ImportBooksCommand struct {
	FilePath     string
	DatabasePath string
	Verbose      bool
}

func NewImportBooksCommand() *ImportBooksCommand {
	return &ImportBooksCommand{}
}

func (cmd *ImportBooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-books", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the books CSV file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the tracker database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every skipped row")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-books -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import books from a CSV file with columns:\n")
		fmt.Fprintf(os.Stderr, "  title, author, isbn, total_pages, shelf\n\n")
		fmt.Fprintf(os.Stderr, "Rows with a missing title or author fall back to placeholder values.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportBooksCommand) Run() error {
	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	parsed, parseErrors, err := importers.ParseBooks(file)
	if err != nil {
		return fmt.Errorf("failed to parse CSV: %w", err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	result := importers.ImportResult{Skipped: len(parseErrors), Errors: parseErrors}
	for i := range parsed {
		if err := repo.Insert(&parsed[i]); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%q: %v", parsed[i].Title, err))
			continue
		}
		result.Imported++
	}

	printResult("books", result, cmd.Verbose)
	return nil
}

// ImportSessionsCommand imports a sessions CSV into the database.
type ImportSessionsCommand struct {
	FilePath     string
	DatabasePath string
	Verbose      bool
}

func NewImportSessionsCommand() *ImportSessionsCommand {
	return &ImportSessionsCommand{}
}

func (cmd *ImportSessionsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-sessions", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the sessions CSV file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the tracker database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every skipped row")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-sessions -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import reading sessions from a CSV file with columns:\n")
		fmt.Fprintf(os.Stderr, "  book_id, start_ts, end_ts, pages_read, note\n\n")
		fmt.Fprintf(os.Stderr, "Rows that fail to parse, or that reference an unknown book, are\n")
		fmt.Fprintf(os.Stderr, "skipped and counted; the rest of the file still imports.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportSessionsCommand) Run() error {
	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	parsed, parseErrors, err := importers.ParseSessions(file)
	if err != nil {
		return fmt.Errorf("failed to parse CSV: %w", err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := sessions.NewRepository(db.DB)
	result := importers.ImportResult{Skipped: len(parseErrors), Errors: parseErrors}
	for i := range parsed {
		if err := repo.Insert(&parsed[i]); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("book %d: %v", parsed[i].BookID, err))
			continue
		}
		result.Imported++
	}

	printResult("sessions", result, cmd.Verbose)
	return nil
}

func printResult(what string, result importers.ImportResult, verbose bool) {
	fmt.Printf("Imported %d %s (%d skipped)\n", result.Imported, what, result.Skipped)
	if verbose {
		for _, msg := range result.Errors {
			fmt.Printf("  %s\n", msg)
		}
	}
}
