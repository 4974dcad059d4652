package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"booktracker/internal/activity"
	"booktracker/internal/config"
	"booktracker/internal/database"
	activityrepo "booktracker/internal/database/activity"
	"booktracker/internal/database/books"
	"booktracker/internal/database/goals"
	"booktracker/internal/database/sessions"
	"booktracker/internal/entities"
	"booktracker/internal/tracker"
	"booktracker/internal/websession"
)

type testEnv struct {
	router   *gin.Engine
	db       *database.Database
	books    *books.Repository
	sessions *sessions.Repository
	goals    *goals.Repository
}

// setupTestRouter builds the full router against a throwaway sqlite
// file, without CSRF so handlers can be driven directly.
func setupTestRouter(t *testing.T) (*testEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath, false)
	require.NoError(t, err)

	booksRepo := books.NewRepository(db.DB)
	sessionsRepo := sessions.NewRepository(db.DB)
	goalsRepo := goals.NewRepository(db.DB)
	activitySvc := activity.NewService(activityrepo.NewRepository(db.DB))

	manager := websession.NewManager(config.Web{SessionLifetime: time.Hour})

	router := NewRouter(RouterConfig{
		Database:       db,
		Books:          booksRepo,
		Sessions:       sessionsRepo,
		Goals:          goalsRepo,
		Activity:       activitySvc,
		DatabasePath:   dbPath,
		Tracker:        tracker.New(manager),
		SessionManager: manager,
		TemplatesPath:  "../../templates",
		StaticPath:     "../../static",
		Version:        "test",
	})

	env := &testEnv{
		router:   router,
		db:       db,
		books:    booksRepo,
		sessions: sessionsRepo,
		goals:    goalsRepo,
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return env, cleanup
}

// request performs an HTTP request against the router, optionally
// carrying cookies from a previous response.
func (e *testEnv) request(method, path string, body io.Reader, contentType string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) insertBook(t *testing.T, title, author string, shelf entities.Shelf) *entities.Book {
	t.Helper()
	book := &entities.Book{Title: title, Author: author, Shelf: shelf}
	require.NoError(t, e.books.Insert(book))
	return book
}

func (e *testEnv) insertSession(t *testing.T, bookID uint, start time.Time, duration time.Duration, pages int) {
	t.Helper()
	require.NoError(t, e.sessions.Insert(&entities.Session{
		BookID:    bookID,
		StartTS:   start,
		EndTS:     start.Add(duration),
		PagesRead: pages,
	}))
}

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestRouter_Ping(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	w := env.request(http.MethodGet, "/ping", nil, "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "pong")
}
