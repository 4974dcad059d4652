package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booktracker/internal/entities"
)

func TestGetGoals_Defaults(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	w := env.request(http.MethodGet, "/api/goals", nil, "", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Goals         entities.Goals `json:"goals"`
		MinutesToday  int            `json:"minutes_today"`
		FinishedBooks int            `json:"finished_books"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, time.Now().UTC().Year(), response.Goals.Year)
	assert.Equal(t, 30, response.Goals.DailyMinutes)
	assert.Equal(t, 24, response.Goals.YearlyBooks)
	assert.Equal(t, 0, response.MinutesToday)
	assert.Equal(t, 0, response.FinishedBooks)
}

func TestGetGoals_Progress(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	book := env.insertBook(t, "Dune", "Frank Herbert", entities.ShelfFinished)
	env.insertSession(t, book.ID, time.Now().UTC().Add(-time.Hour), 45*time.Minute, 30)

	w := env.request(http.MethodGet, "/api/goals", nil, "", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		MinutesToday  int `json:"minutes_today"`
		FinishedBooks int `json:"finished_books"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 45, response.MinutesToday)
	assert.Equal(t, 1, response.FinishedBooks)
}

func TestPutGoals(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	body := `{"year": 2026, "daily_minutes": 60, "yearly_books": 52}`
	w := env.request(http.MethodPut, "/api/goals", strings.NewReader(body), "application/json", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var goals entities.Goals
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &goals))
	assert.Equal(t, 2026, goals.Year)
	assert.Equal(t, 60, goals.DailyMinutes)
	assert.Equal(t, 52, goals.YearlyBooks)
}

func TestPutGoals_Validation(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	cases := []struct {
		name string
		body string
	}{
		{"year too small", `{"year": 1990, "daily_minutes": 30, "yearly_books": 24}`},
		{"year too large", `{"year": 3000, "daily_minutes": 30, "yearly_books": 24}`},
		{"zero daily minutes", `{"year": 2026, "daily_minutes": 0, "yearly_books": 24}`},
		{"zero yearly books", `{"year": 2026, "daily_minutes": 30, "yearly_books": 0}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.request(http.MethodPut, "/api/goals", strings.NewReader(tc.body), "application/json", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGoalsPage(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	w := env.request(http.MethodGet, "/goals", nil, "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "minutes today")
	assert.Contains(t, w.Body.String(), "books finished")
}

func TestUpdateGoals_Form(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	form := url.Values{
		"year":          {"2026"},
		"daily_minutes": {"45"},
		"yearly_books":  {"36"},
	}
	w := env.request(http.MethodPost, "/goals", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "msg=")

	goals, err := env.goals.Get()
	require.NoError(t, err)
	assert.Equal(t, 45, goals.DailyMinutes)
}

func TestUpdateGoals_Form_RejectsZero(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	form := url.Values{
		"year":          {"2026"},
		"daily_minutes": {"0"},
		"yearly_books":  {"36"},
	}
	w := env.request(http.MethodPost, "/goals", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=")
}
