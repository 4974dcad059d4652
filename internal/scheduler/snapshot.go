// Package scheduler provides the optional CSV snapshot scheduler: a
// periodic export of the book and session tables to timestamped files.
// It is disabled by default so the runtime stays fully synchronous.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"booktracker/internal/activity"
	"booktracker/internal/database/books"
	"booktracker/internal/database/sessions"
	"booktracker/internal/exporters"
)

// SnapshotScheduler writes CSV exports of the library on a cron
// schedule.
type SnapshotScheduler struct {
	books    *books.Repository
	sessions *sessions.Repository
	activity *activity.Service

	schedule string
	dir      string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewSnapshotScheduler creates a scheduler writing to dir on the given
// cron schedule (standard five-field format).
func NewSnapshotScheduler(booksRepo *books.Repository, sessionsRepo *sessions.Repository, activitySvc *activity.Service, schedule, dir string) *SnapshotScheduler {
	return &SnapshotScheduler{
		books:    booksRepo,
		sessions: sessionsRepo,
		activity: activitySvc,
		schedule: schedule,
		dir:      dir,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. Starting an already-running scheduler is
// a no-op.
func (s *SnapshotScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.dir == "" {
		return fmt.Errorf("snapshot directory not configured")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory %s: %w", s.dir, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSnapshot()
	})
	if err != nil {
		return fmt.Errorf("invalid snapshot schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Snapshot scheduler: started with schedule '%s', writing to %s", s.schedule, s.dir)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *SnapshotScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.cron.Remove(s.entryID)
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	log.Printf("Snapshot scheduler: stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *SnapshotScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// runSnapshot executes one export cycle.
func (s *SnapshotScheduler) runSnapshot() {
	now := time.Now().UTC()
	err := s.WriteSnapshot(now)

	description := fmt.Sprintf("Snapshot written to %s", s.dir)
	if err != nil {
		description = "Snapshot failed"
		log.Printf("Snapshot scheduler: %v", err)
	}
	s.activity.LogSnapshot(description, err)
}

// WriteSnapshot exports both tables to timestamped CSV files under the
// snapshot directory.
func (s *SnapshotScheduler) WriteSnapshot(at time.Time) error {
	allBooks, err := s.books.List("title")
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}
	booksCSV, err := exporters.BooksCSV(allBooks)
	if err != nil {
		return fmt.Errorf("failed to render books CSV: %w", err)
	}

	rows, err := s.sessions.List(0)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	sessionsCSV, err := exporters.SessionsCSV(rows)
	if err != nil {
		return fmt.Errorf("failed to render sessions CSV: %w", err)
	}

	booksPath := filepath.Join(s.dir, exporters.ExportFilename("books", at))
	if err := os.WriteFile(booksPath, []byte(booksCSV), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", booksPath, err)
	}

	sessionsPath := filepath.Join(s.dir, exporters.ExportFilename("sessions", at))
	if err := os.WriteFile(sessionsPath, []byte(sessionsCSV), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", sessionsPath, err)
	}

	return nil
}
