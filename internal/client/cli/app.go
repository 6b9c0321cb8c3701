// Package cli implements the interactive blogbox client. Every command
// corresponds to a view of the web frontend this tool replaces, and runs
// through the same guards.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/akarpov/blogbox/internal/client/api"
	"github.com/akarpov/blogbox/internal/client/config"
	"github.com/akarpov/blogbox/internal/client/route"
	"github.com/akarpov/blogbox/internal/client/session"
	"github.com/akarpov/blogbox/internal/logging"
)

type App struct {
	config     *config.Config
	client     api.Client
	controller *session.Controller
	resolver   *route.Resolver
	logger     logging.Logger
	db         *sql.DB
	reader     *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := session.InitDatabase(ctx, c.StateDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing state database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)

	controller, err := session.NewController(ctx, session.NewSQLiteStore(db), apiClient)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:     c,
		client:     apiClient,
		controller: controller,
		resolver:   route.NewResolver(controller),
		logger:     logger,
		db:         db,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return !a.controller.Current().IsEmpty()
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run resolves the startup session exactly once and lands the visitor on
// the route the root redirect picks, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}
