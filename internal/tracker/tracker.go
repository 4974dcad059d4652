// Package tracker holds the transient active-reading-session marker.
//
// The marker lives in the visitor's web session (in-memory store), not
// in the database: starting a session records the book and the start
// time, stopping it writes a durable Session row and clears the marker.
// A process restart while a session is active simply loses the marker.
package tracker

import (
	"context"
	"encoding/gob"
	"errors"
	"time"

	"booktracker/internal/websession"
)

const sessionKey = "active_session"

var (
	// ErrAlreadyActive is returned by Start when a session is already
	// in progress.
	ErrAlreadyActive = errors.New("a reading session is already active")

	// ErrNotActive is returned when stopping without an active session.
	ErrNotActive = errors.New("no reading session is active")
)

func init() {
	gob.Register(ActiveSession{})
}

// ActiveSession is the in-progress reading session marker.
type ActiveSession struct {
	BookID  uint
	StartTS time.Time
	Label   string // "Title - Author", for display
}

// Elapsed returns the time since the session started.
func (a ActiveSession) Elapsed() time.Duration {
	return time.Now().UTC().Sub(a.StartTS)
}

// Tracker reads and writes the marker through the scs-managed request
// context. All methods must be called within a request wrapped by the
// session middleware.
type Tracker struct {
	sessions *websession.Manager
}

func New(sessions *websession.Manager) *Tracker {
	return &Tracker{sessions: sessions}
}

// Active returns the current marker, or nil when idle.
func (t *Tracker) Active(ctx context.Context) *ActiveSession {
	value := t.sessions.Get(ctx, sessionKey)
	if value == nil {
		return nil
	}
	active, ok := value.(ActiveSession)
	if !ok {
		return nil
	}
	return &active
}

// Start captures the start of a reading session. The start timestamp is
// the current UTC time.
func (t *Tracker) Start(ctx context.Context, bookID uint, label string) (*ActiveSession, error) {
	if t.Active(ctx) != nil {
		return nil, ErrAlreadyActive
	}
	active := ActiveSession{
		BookID:  bookID,
		StartTS: time.Now().UTC(),
		Label:   label,
	}
	t.sessions.Put(ctx, sessionKey, active)
	return &active, nil
}

// Clear removes the marker, returning it so the caller can persist the
// finished session. Returns ErrNotActive when idle.
func (t *Tracker) Clear(ctx context.Context) (*ActiveSession, error) {
	active := t.Active(ctx)
	if active == nil {
		return nil, ErrNotActive
	}
	t.sessions.Remove(ctx, sessionKey)
	return active, nil
}
