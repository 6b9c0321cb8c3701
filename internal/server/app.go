// Package server initializes and runs the backend application: it opens
// the database, migrates the schema, wires the services and serves the
// REST API until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akarpov/blogbox/internal/logging"
	"github.com/akarpov/blogbox/internal/server/blogs"
	"github.com/akarpov/blogbox/internal/server/config"
	"github.com/akarpov/blogbox/internal/server/rest"
	"github.com/akarpov/blogbox/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *users.Service
	blogService *blogs.Service
	rateLimiter *rest.RateLimiter
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	userRepo := users.NewPostgresRepository(db)
	blogRepo := blogs.NewPostgresRepository(db)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		userService: users.NewService(userRepo, cfg),
		blogService: blogs.NewService(blogRepo),
		rateLimiter: rest.NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst),
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	router := rest.NewRouter(&rest.RouterDeps{
		Users:       app.userService,
		Blogs:       app.blogService,
		SecretKey:   []byte(app.config.SecretKey),
		RateLimiter: app.rateLimiter,
		Logger:      app.logger,
	})

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
		}
	case <-ctx.Done():
		app.logger.Info(ctx, "Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}

	app.rateLimiter.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
