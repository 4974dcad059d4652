package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booktracker/internal/entities"
	"booktracker/internal/stats"
)

func TestGetStats(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	dune := env.insertBook(t, "Dune", "Frank Herbert", entities.ShelfFinished)
	env.insertBook(t, "Emma", "Jane Austen", entities.ShelfReading)

	base := mustParseTime(t, "2026-03-10T08:00:00Z")
	env.insertSession(t, dune.ID, base, time.Hour, 40)
	env.insertSession(t, dune.ID, base.Add(24*time.Hour), 30*time.Minute, 20)

	w := env.request(http.MethodGet, "/api/stats", nil, "", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var summary stats.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.TotalBooks)
	assert.Equal(t, 2, summary.SessionCount)
	assert.Equal(t, 60, summary.TotalPages)
	assert.InDelta(t, 1.5, summary.TotalHours, 0.001)
	assert.Equal(t, 1, summary.ShelfCounts[entities.ShelfFinished])
	assert.Equal(t, 0, summary.ShelfCounts[entities.ShelfToRead])
}

func TestGetMonthlyStats(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	book := env.insertBook(t, "Dune", "Frank Herbert", entities.ShelfReading)
	env.insertSession(t, book.ID, mustParseTime(t, "2026-01-15T08:00:00Z"), time.Hour, 40)
	env.insertSession(t, book.ID, mustParseTime(t, "2026-03-10T08:00:00Z"), 30*time.Minute, 20)

	w := env.request(http.MethodGet, "/api/stats/monthly", nil, "", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Months []stats.MonthlyBucket `json:"months"`
		Count  int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, 40, response.Months[0].Pages)
	assert.True(t, response.Months[0].Month.Before(response.Months[1].Month))
}

func TestStatsPage(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	book := env.insertBook(t, "Dune", "Frank Herbert", entities.ShelfReading)
	env.insertSession(t, book.ID, mustParseTime(t, "2026-03-10T08:00:00Z"), time.Hour, 40)

	w := env.request(http.MethodGet, "/stats", nil, "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pages read")
	assert.Contains(t, w.Body.String(), "Mar 2026")
}

func TestStatsPage_Empty(t *testing.T) {
	env, cleanup := setupTestRouter(t)
	defer cleanup()

	w := env.request(http.MethodGet, "/stats", nil, "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Record a few sessions")
}
