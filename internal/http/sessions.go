package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"booktracker/internal/database/sessions"
	"booktracker/internal/entities"
	"booktracker/internal/tracker"
)

const recentSessionsLimit = 10

// SessionStore is the persistence surface the sessions controller needs.
type SessionStore interface {
	Insert(session *entities.Session) error
	List(limit int) ([]entities.SessionWithBook, error)
}

type SessionsController struct {
	store   SessionStore
	books   BookStore
	tracker *tracker.Tracker
}

func NewSessionsController(store SessionStore, books BookStore, t *tracker.Tracker) *SessionsController {
	return &SessionsController{store: store, books: books, tracker: t}
}

// --- HTML views ---

// SessionPage renders the start/stop view with the book picker, the
// active-session marker and the most recent sessions.
func (ctrl *SessionsController) SessionPage(c *gin.Context) {
	allBooks, err := ctrl.books.List("title")
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	recent, err := ctrl.store.List(recentSessionsLimit)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading sessions: %s", err.Error())
		return
	}

	data := gin.H{
		"Books":  allBooks,
		"Recent": recent,
	}
	if active := ctrl.tracker.Active(c.Request.Context()); active != nil {
		data["Active"] = active
		data["ElapsedMinutes"] = int(math.Floor(active.Elapsed().Minutes()))
	}

	c.HTML(http.StatusOK, "session", pageData(c, data))
}

// StartSession captures the start of a reading session in the visitor's
// web session. Nothing is persisted until the session is stopped.
func (ctrl *SessionsController) StartSession(c *gin.Context) {
	bookID, err := strconv.ParseUint(c.PostForm("book_id"), 10, 32)
	if err != nil {
		redirectWithError(c, "/sessions", "Choose a book first.")
		return
	}

	book, err := ctrl.books.GetByID(uint(bookID))
	if err != nil {
		redirectWithError(c, "/sessions", "Book not found.")
		return
	}

	label := book.Title + " - " + book.Author
	if _, err := ctrl.tracker.Start(c.Request.Context(), book.ID, label); err != nil {
		redirectWithError(c, "/sessions", "A session is already active.")
		return
	}

	redirectWithMessage(c, "/sessions", "Session started.")
}

// StopSession writes a durable session row from the captured start and
// a newly captured end, then clears the marker.
func (ctrl *SessionsController) StopSession(c *gin.Context) {
	active := ctrl.tracker.Active(c.Request.Context())
	if active == nil {
		redirectWithError(c, "/sessions", "No session is active.")
		return
	}

	pagesRead := 0
	if raw := c.PostForm("pages_read"); raw != "" {
		pages, err := strconv.Atoi(raw)
		if err != nil || pages < 0 {
			redirectWithError(c, "/sessions", "Pages read must be zero or positive.")
			return
		}
		pagesRead = pages
	}

	session := entities.Session{
		BookID:    active.BookID,
		StartTS:   active.StartTS,
		EndTS:     time.Now().UTC(),
		PagesRead: pagesRead,
		Note:      c.PostForm("note"),
	}
	if err := ctrl.store.Insert(&session); err != nil {
		redirectWithError(c, "/sessions", "Could not save the session.")
		return
	}

	// Clear only after the row is safely written.
	if _, err := ctrl.tracker.Clear(c.Request.Context()); err != nil && !errors.Is(err, tracker.ErrNotActive) {
		redirectWithError(c, "/sessions", "Session saved but the marker could not be cleared.")
		return
	}

	redirectWithMessage(c, "/sessions", "Session saved.")
}

// --- JSON API ---

// ListSessions returns sessions joined with book identity, newest
// first. ?limit= caps the result.
func (ctrl *SessionsController) ListSessions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondBadRequest(c, "invalid limit")
			return
		}
		limit = parsed
	}

	rows, err := ctrl.store.List(limit)
	if err != nil {
		respondInternalError(c, err, "list sessions")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"sessions": rows, "count": len(rows)})
}

// sessionRequest carries an imported or directly created session.
type sessionRequest struct {
	BookID    uint      `json:"book_id"`
	StartTS   time.Time `json:"start_ts"`
	EndTS     time.Time `json:"end_ts"`
	PagesRead int       `json:"pages_read"`
	Note      string    `json:"note"`
}

// CreateSession inserts a finished session from a JSON body. Unlike the
// form flow, start and end are supplied by the caller.
func (ctrl *SessionsController) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	session := entities.Session{
		BookID:    req.BookID,
		StartTS:   req.StartTS.UTC(),
		EndTS:     req.EndTS.UTC(),
		PagesRead: req.PagesRead,
		Note:      req.Note,
	}
	if err := ctrl.store.Insert(&session); err != nil {
		switch {
		case errors.Is(err, sessions.ErrBookNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, sessions.ErrInvalidInterval), errors.Is(err, sessions.ErrNegativePages):
			respondBadRequest(c, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "book")
		default:
			respondInternalError(c, err, "create session")
		}
		return
	}

	respondCreated(c, session)
}
