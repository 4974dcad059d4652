package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booktracker/internal/entities"
)

func TestCreateSession_JSON(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	book := env.insertBook(t, "Dune", "Frank Herbert", entities.ShelfReading)

	body := fmt.Sprintf(`{
		"book_id": %d,
		"start_ts": "2026-03-10T08:00:00Z",
		"end_ts": "2026-03-10T08:45:00Z",
		"pages_read": 20,
		"note": "Morning read"
	}`, book.ID)
	w := env.request(http.MethodPost, "/api/sessions", strings.NewReader(body), "application/json", nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var session entities.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.NotZero(t, session.ID)
	assert.Equal(t, book.ID, session.BookID)
	assert.Equal(t, 20, session.PagesRead)
}

func TestCreateSession_JSON_UnknownBook(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	body := `{"book_id": 999, "start_ts": "2026-03-10T08:00:00Z", "end_ts": "2026-03-10T09:00:00Z"}`
	w := env.request(http.MethodPost, "/api/sessions", strings.NewReader(body), "application/json", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSession_JSON_EndBeforeStart(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	book := env.insertBook(t, "Dune", "Frank Herbert", entities.ShelfReading)

	body := fmt.Sprintf(`{"book_id": %d, "start_ts": "2026-03-10T09:00:00Z", "end_ts": "2026-03-10T08:00:00Z"}`, book.ID)
	w := env.request(http.MethodPost, "/api/sessions", strings.NewReader(body), "application/json", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSession_JSON_NegativePages(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	book := env.insertBook(t, "Dune", "Frank Herbert", entities.ShelfReading)

	body := fmt.Sprintf(`{"book_id": %d, "start_ts": "2026-03-10T08:00:00Z", "end_ts": "2026-03-10T09:00:00Z", "pages_read": -5}`, book.ID)
	w := env.request(http.MethodPost, "/api/sessions", strings.NewReader(body), "application/json", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSessions(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	book := env.insertBook(t, "Dune", "Frank Herbert", entities.ShelfReading)
	base := mustParseTime(t, "2026-03-10T08:00:00Z")
	for i := 0; i < 3; i++ {
		env.insertSession(t, book.ID, base.Add(time.Duration(i)*time.Hour), 30*time.Minute, 10)
	}

	w := env.request(http.MethodGet, "/api/sessions?limit=2", nil, "", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Sessions []entities.SessionWithBook `json:"sessions"`
		Count    int                        `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, "Dune", response.Sessions[0].Title)
	assert.True(t, response.Sessions[0].StartTS.After(response.Sessions[1].StartTS))
}

func TestListSessions_InvalidLimit(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	w := env.request(http.MethodGet, "/api/sessions?limit=-1", nil, "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- HTML flows ---

func TestSessionPage(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	env.insertBook(t, "Dune", "Frank Herbert", entities.ShelfReading)

	w := env.request(http.MethodGet, "/sessions", nil, "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Start Session")
	assert.Contains(t, w.Body.String(), "Dune")
}

func TestStartStopSession_Form(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	book := env.insertBook(t, "Dune", "Frank Herbert", entities.ShelfReading)

	// Start
	form := url.Values{"book_id": {fmt.Sprintf("%d", book.ID)}}
	w := env.request(http.MethodPost, "/sessions/start", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "msg=")
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The session page now shows the active marker
	w = env.request(http.MethodGet, "/sessions", nil, "", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Stop Session")
	assert.Contains(t, w.Body.String(), "Dune - Frank Herbert")

	// Stop, logging 20 pages
	form = url.Values{"pages_read": {"20"}, "note": {"Morning read"}}
	w = env.request(http.MethodPost, "/sessions/stop", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "msg=")

	rows, err := env.sessions.List(0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, book.ID, rows[0].BookID)
	assert.Equal(t, 20, rows[0].PagesRead)
	assert.Equal(t, "Morning read", rows[0].Note)
	assert.False(t, rows[0].EndTS.Before(rows[0].StartTS))
}

func TestStartSession_Form_AlreadyActive(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	book := env.insertBook(t, "Dune", "Frank Herbert", entities.ShelfReading)

	form := url.Values{"book_id": {fmt.Sprintf("%d", book.ID)}}
	w := env.request(http.MethodPost, "/sessions/start", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()

	w = env.request(http.MethodPost, "/sessions/start", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=")
}

func TestStopSession_Form_NoActiveSession(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	w := env.request(http.MethodPost, "/sessions/stop", nil, "application/x-www-form-urlencoded", nil)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=")

	count, err := env.sessions.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestStartSession_Form_UnknownBook(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	form := url.Values{"book_id": {"999"}}
	w := env.request(http.MethodPost, "/sessions/start", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=")
}
