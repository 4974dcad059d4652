// Package websession carries the per-browser web session and the form
// protection middleware. The session's only payload is the transient
// active-reading-session marker: it lives in scs's in-memory store, so a
// process restart clears any in-progress session by design.
package websession

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"booktracker/internal/config"
)

// Manager wraps scs.SessionManager with application-specific
// configuration.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager backed by scs's
// default in-memory store.
func NewManager(cfg config.Web) *Manager {
	sm := scs.New()

	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}
}
