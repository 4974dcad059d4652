package http

import (
	"booktracker/internal/activity"
	"booktracker/internal/database"
	"booktracker/internal/database/books"
	"booktracker/internal/database/goals"
	"booktracker/internal/database/sessions"
	"booktracker/internal/tracker"
	"booktracker/internal/websession"
)

// RouterConfig holds all dependencies needed to create the router.
// Using a config struct instead of parameters improves testability and
// keeps NewRouter's signature stable as the app grows.
type RouterConfig struct {
	// Data access
	Database     *database.Database
	Books        *books.Repository
	Sessions     *sessions.Repository
	Goals        *goals.Repository
	Activity     *activity.Service
	DatabasePath string

	// Transient reading-session state
	Tracker        *tracker.Tracker
	SessionManager *websession.Manager

	// Form protection; CSRF is disabled when the secret is empty
	// (tests exercise handlers without it).
	CSRFSecret    []byte
	SecureCookies bool

	// UI assets
	TemplatesPath string
	StaticPath    string

	Version string

	// Snapshot scheduler info for the settings page
	SnapshotEnabled  bool
	SnapshotSchedule string
	SnapshotDir      string
}
