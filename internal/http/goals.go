package http

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"booktracker/internal/entities"
	"booktracker/internal/stats"
)

// GoalStore is the persistence surface the goals controller needs.
type GoalStore interface {
	Get() (*entities.Goals, error)
	Upsert(year, dailyMinutes, yearlyBooks int) error
}

type GoalsController struct {
	store    GoalStore
	books    BookStore
	sessions SessionStore
}

func NewGoalsController(store GoalStore, books BookStore, sessions SessionStore) *GoalsController {
	return &GoalsController{store: store, books: books, sessions: sessions}
}

// goalsProgress combines the stored targets with today's and this
// year's progress.
type goalsProgress struct {
	Goals         entities.Goals `json:"goals"`
	MinutesToday  int            `json:"minutes_today"`
	FinishedBooks int            `json:"finished_books"`
}

func (ctrl *GoalsController) progress() (*goalsProgress, error) {
	goals, err := ctrl.store.Get()
	if err != nil {
		return nil, err
	}
	allBooks, err := ctrl.books.List("title")
	if err != nil {
		return nil, err
	}
	allSessions, err := ctrl.sessions.List(0)
	if err != nil {
		return nil, err
	}

	// "Today" is the UTC date, matching how sessions are stamped.
	minutesToday := stats.MinutesOn(allSessions, time.Now().UTC())

	return &goalsProgress{
		Goals:         *goals,
		MinutesToday:  int(math.Round(minutesToday)),
		FinishedBooks: stats.FinishedBooks(allBooks),
	}, nil
}

// GoalsPage renders targets and progress with the edit form.
func (ctrl *GoalsController) GoalsPage(c *gin.Context) {
	progress, err := ctrl.progress()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading goals: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "goals", pageData(c, gin.H{
		"Goals":         progress.Goals,
		"MinutesToday":  progress.MinutesToday,
		"FinishedBooks": progress.FinishedBooks,
	}))
}

// UpdateGoals handles the goal form post. The row is upserted: the
// goals table never grows past one row.
func (ctrl *GoalsController) UpdateGoals(c *gin.Context) {
	year, err := strconv.Atoi(c.PostForm("year"))
	if err != nil || year < 2000 || year > 2100 {
		redirectWithError(c, "/goals", "Goal year must be between 2000 and 2100.")
		return
	}
	dailyMinutes, err := strconv.Atoi(c.PostForm("daily_minutes"))
	if err != nil || dailyMinutes < 1 {
		redirectWithError(c, "/goals", "Daily minutes goal must be positive.")
		return
	}
	yearlyBooks, err := strconv.Atoi(c.PostForm("yearly_books"))
	if err != nil || yearlyBooks < 1 {
		redirectWithError(c, "/goals", "Yearly books goal must be positive.")
		return
	}

	if err := ctrl.store.Upsert(year, dailyMinutes, yearlyBooks); err != nil {
		redirectWithError(c, "/goals", "Could not save goals.")
		return
	}

	redirectWithMessage(c, "/goals", "Goals updated.")
}

// --- JSON API ---

// GetGoals returns targets and progress as JSON.
func (ctrl *GoalsController) GetGoals(c *gin.Context) {
	progress, err := ctrl.progress()
	if err != nil {
		respondInternalError(c, err, "load goals")
		return
	}
	c.IndentedJSON(http.StatusOK, progress)
}

type goalsRequest struct {
	Year         int `json:"year"`
	DailyMinutes int `json:"daily_minutes"`
	YearlyBooks  int `json:"yearly_books"`
}

// PutGoals upserts the goals row from a JSON body.
func (ctrl *GoalsController) PutGoals(c *gin.Context) {
	var req goalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Year < 2000 || req.Year > 2100 {
		respondBadRequest(c, "year must be between 2000 and 2100")
		return
	}
	if req.DailyMinutes < 1 || req.YearlyBooks < 1 {
		respondBadRequest(c, "goals must be positive")
		return
	}

	if err := ctrl.store.Upsert(req.Year, req.DailyMinutes, req.YearlyBooks); err != nil {
		respondInternalError(c, err, "upsert goals")
		return
	}

	goals, err := ctrl.store.Get()
	if err != nil {
		respondInternalError(c, err, "reload goals")
		return
	}
	c.IndentedJSON(http.StatusOK, goals)
}
