package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bookshelf-api/internal/api/middleware"
	"github.com/phrazzld/bookshelf-api/internal/api/shared"
	"github.com/phrazzld/bookshelf-api/internal/config"
	"github.com/phrazzld/bookshelf-api/internal/metrics"
	"github.com/phrazzld/bookshelf-api/internal/platform/logger"
	"github.com/phrazzld/bookshelf-api/internal/platform/postgres"
	"github.com/phrazzld/bookshelf-api/internal/service"
	"github.com/phrazzld/bookshelf-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	registry *prometheus.Registry
	metrics  *metrics.Collector

	jwtService    auth.JWTService
	bookService   service.BookService
	authorService service.AuthorService
	userService   service.UserService

	errors      *shared.ErrorResponder
	rateLimiter *middleware.RateLimiter
}

// newApplication wires stores, services and HTTP collaborators on top of an
// already connected database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		registry: prometheus.NewRegistry(),
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.NewCollector(app.registry)

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_seconds", cfg.Auth.TokenLifetimeSeconds))

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	bookStore := postgres.NewPostgresBookStore(db, logger)
	authorStore := postgres.NewPostgresAuthorStore(db, logger)
	userStore := postgres.NewPostgresUserStore(db, logger)

	app.bookService = service.NewBookService(bookStore, db, logger)
	app.authorService = service.NewAuthorService(authorStore, db, logger)
	app.userService = service.NewUserService(userStore, hasher, db, logger)

	app.errors = shared.NewErrorResponder(cfg.Server.IsDevelopment(), logger)
	app.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, app.errors, app.metrics, logger)

	logger.Info("application initialized",
		slog.String("environment", cfg.Server.Environment),
		slog.Bool("rate_limit_enabled", app.rateLimiter.Enabled()))
	return app, nil
}

// bootstrap brings the schema up to date and creates the admin account on an
// empty user table.
func (app *application) bootstrap(ctx context.Context) error {
	if err := postgres.Migrate(ctx, app.db, postgres.MigrateUp, app.logger); err != nil {
		return err
	}
	created, err := app.userService.EnsureAdmin(ctx, app.config.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin user: %w", err)
	}
	if created {
		app.logger.Info("bootstrap admin user created")
	}
	return nil
}

// Run serves HTTP until a shutdown signal arrives or ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases everything newApplication acquired.
func (app *application) cleanup() {
	if app.rateLimiter != nil {
		app.rateLimiter.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}

// runServer is the serve command: configuration, logging, database, wiring,
// bootstrap, then the HTTP server.
func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return err
	}
	if err := app.bootstrap(ctx); err != nil {
		app.cleanup()
		return err
	}
	return app.Run(ctx)
}
