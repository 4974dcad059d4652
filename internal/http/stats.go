package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booktracker/internal/stats"
)

type StatsController struct {
	books    BookStore
	sessions SessionStore
}

func NewStatsController(books BookStore, sessions SessionStore) *StatsController {
	return &StatsController{books: books, sessions: sessions}
}

// StatsPage renders the aggregate view: headline totals plus monthly
// pages/hours charts.
func (ctrl *StatsController) StatsPage(c *gin.Context) {
	allBooks, err := ctrl.books.List("title")
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}
	allSessions, err := ctrl.sessions.List(0)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading sessions: %s", err.Error())
		return
	}

	summary := stats.Summarize(allBooks, allSessions)
	monthly := stats.Monthly(allSessions)

	// Scale for the CSS bar chart: the widest bar is the busiest month.
	maxPages, maxHours := 0, 0.0
	for _, b := range monthly {
		if b.Pages > maxPages {
			maxPages = b.Pages
		}
		if b.Hours > maxHours {
			maxHours = b.Hours
		}
	}

	c.HTML(http.StatusOK, "stats", pageData(c, gin.H{
		"Summary":  summary,
		"Monthly":  monthly,
		"MaxPages": maxPages,
		"MaxHours": maxHours,
	}))
}

// GetStats returns the headline totals as JSON.
func (ctrl *StatsController) GetStats(c *gin.Context) {
	allBooks, err := ctrl.books.List("title")
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	allSessions, err := ctrl.sessions.List(0)
	if err != nil {
		respondInternalError(c, err, "list sessions")
		return
	}

	c.IndentedJSON(http.StatusOK, stats.Summarize(allBooks, allSessions))
}

// GetMonthlyStats returns the per-month pages/hours buckets as JSON.
func (ctrl *StatsController) GetMonthlyStats(c *gin.Context) {
	allSessions, err := ctrl.sessions.List(0)
	if err != nil {
		respondInternalError(c, err, "list sessions")
		return
	}

	monthly := stats.Monthly(allSessions)
	c.IndentedJSON(http.StatusOK, gin.H{"months": monthly, "count": len(monthly)})
}
