// Package server initializes and runs the FlowSpace backend: it opens the
// database, applies migrations, wires services and the HTTP API, and runs
// the revocation-sweep background task until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/flowspace/internal/logging"
	"github.com/dmitrijs2005/flowspace/internal/server/config"
	hs "github.com/dmitrijs2005/flowspace/internal/server/http"
	"github.com/dmitrijs2005/flowspace/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/flowspace/internal/server/services"
	"github.com/dmitrijs2005/flowspace/internal/server/storage"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	profileService *services.ProfileService
	cleanupService *services.CleanupService
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, rm, c)
	ps := services.NewProfileService(db, rm, storage.NewS3Store(c), logger)
	cs := services.NewCleanupService(db, rm, c.CleanupInterval, logger)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    us,
		profileService: ps,
		cleanupService: cs,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	auth := hs.NewAuthHandler(app.userService, app.logger)
	profile := hs.NewProfileHandler(app.profileService, app.logger)
	router := hs.NewRouter(auth, profile, app.config.CORSAllowedOrigins)

	s := hs.NewServer(app.config.EndpointAddr, router, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.cleanupService.Run(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
