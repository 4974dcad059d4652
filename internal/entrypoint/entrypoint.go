package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"booktracker/internal/activity"
	"booktracker/internal/config"
	"booktracker/internal/database"
	activityrepo "booktracker/internal/database/activity"
	"booktracker/internal/database/books"
	"booktracker/internal/database/goals"
	"booktracker/internal/database/sessions"
	http_controllers "booktracker/internal/http"
	"booktracker/internal/scheduler"
	"booktracker/internal/tracker"
	"booktracker/internal/websession"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Book Tracker v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path, cfg.Seed.SampleData)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	booksRepo := books.NewRepository(db.DB)
	sessionsRepo := sessions.NewRepository(db.DB)
	goalsRepo := goals.NewRepository(db.DB)
	activitySvc := activity.NewService(activityrepo.NewRepository(db.DB))

	// Cookie sessions hold the active reading-session marker. The store
	// is in-memory so an in-progress session does not survive a restart.
	sessionManager := websession.NewManager(cfg.Web)
	readingTracker := tracker.New(sessionManager)

	var csrfSecret []byte
	if cfg.Web.SessionSecret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Web.SessionSecret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Web.SessionSecret)
		}
	} else {
		secret, err := websession.GenerateSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		csrfSecret, _ = hex.DecodeString(secret)
		log.Printf("Generated session secret (set SESSION_SECRET to persist)")
	}

	var snapshotScheduler *scheduler.SnapshotScheduler
	if cfg.Snapshot.Enabled {
		snapshotScheduler = scheduler.NewSnapshotScheduler(
			booksRepo, sessionsRepo, activitySvc,
			cfg.Snapshot.Schedule, cfg.Snapshot.Dir,
		)
		if err := snapshotScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start snapshot scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:     db,
		Books:        booksRepo,
		Sessions:     sessionsRepo,
		Goals:        goalsRepo,
		Activity:     activitySvc,
		DatabasePath: cfg.Database.Path,

		Tracker:        readingTracker,
		SessionManager: sessionManager,

		CSRFSecret:    csrfSecret,
		SecureCookies: cfg.Web.SecureCookies,

		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,

		Version: version,

		SnapshotEnabled:  cfg.Snapshot.Enabled,
		SnapshotSchedule: cfg.Snapshot.Schedule,
		SnapshotDir:      cfg.Snapshot.Dir,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if snapshotScheduler != nil {
			snapshotScheduler.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
