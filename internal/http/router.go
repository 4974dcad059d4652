package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"booktracker/internal/websession"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(websession.SecurityHeadersMiddleware())

	// CSRF must run before the session middleware so that the session
	// context is added on top of CSRF's request replacement.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(websession.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.LoadSave())
	}

	// Template functions for the chart bars
	funcMap := template.FuncMap{
		"percent": func(value, max float64) int {
			if max <= 0 {
				return 0
			}
			return int(value / max * 100)
		},
		"percentInt": func(value, max int) int {
			if max <= 0 {
				return 0
			}
			return value * 100 / max
		},
	}

	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	// Controllers
	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Books)
	sessionsController := NewSessionsController(cfg.Sessions, cfg.Books, cfg.Tracker)
	statsController := NewStatsController(cfg.Books, cfg.Sessions)
	goalsController := NewGoalsController(cfg.Goals, cfg.Books, cfg.Sessions)
	settingsController := NewSettingsController(cfg.Books, cfg.Sessions, cfg.Activity, cfg)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Library views
	router.GET("/", booksController.LibraryPage)
	router.GET("/books/new", booksController.AddBookPage)
	router.POST("/books/new", booksController.CreateBook)
	router.POST("/books/:id/update", booksController.UpdateBook)
	router.POST("/books/:id/delete", booksController.DeleteBook)

	// Reading session views
	router.GET("/sessions", sessionsController.SessionPage)
	router.POST("/sessions/start", sessionsController.StartSession)
	router.POST("/sessions/stop", sessionsController.StopSession)

	// Stats and goals views
	router.GET("/stats", statsController.StatsPage)
	router.GET("/goals", goalsController.GoalsPage)
	router.POST("/goals", goalsController.UpdateGoals)

	// Settings: storage info, export/import
	router.GET("/settings", settingsController.SettingsPage)
	router.GET("/settings/export/books.csv", settingsController.ExportBooks)
	router.GET("/settings/export/sessions.csv", settingsController.ExportSessions)
	router.POST("/settings/import/books", settingsController.ImportBooks)
	router.POST("/settings/import/sessions", settingsController.ImportSessions)

	// JSON API
	router.GET("/api/books", booksController.ListBooks)
	router.POST("/api/books", booksController.CreateBookJSON)
	router.PUT("/api/books/:id", booksController.UpdateBookJSON)
	router.DELETE("/api/books/:id", booksController.DeleteBookJSON)
	router.GET("/api/sessions", sessionsController.ListSessions)
	router.POST("/api/sessions", sessionsController.CreateSession)
	router.GET("/api/goals", goalsController.GetGoals)
	router.PUT("/api/goals", goalsController.PutGoals)
	router.GET("/api/stats", statsController.GetStats)
	router.GET("/api/stats/monthly", statsController.GetMonthlyStats)

	return router
}
