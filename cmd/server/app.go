package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/postgres"
	"github.com/phrazzld/blog-api/internal/service"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/phrazzld/blog-api/internal/store"
	"gorm.io/gorm"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *gorm.DB

	userStore store.UserStore
	postStore store.PostStore

	jwtService  auth.JWTService
	userService service.UserService
	postService service.PostService
}

// newApplication wires stores and services over an already opened database.
// The database handle is shared by every request.
func newApplication(cfg *config.Config, logger *slog.Logger, db *gorm.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.postStore = postgres.NewPostgresPostStore(db, logger)

	app.userService = service.NewUserService(app.userStore, db, logger)
	app.postService = service.NewPostService(app.postStore, logger)

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the database pool.
func (app *application) cleanup() {
	if app.db != nil {
		if err := postgres.Close(app.db); err != nil {
			app.logger.Error("error closing database connection", slog.Any("error", err))
		}
	}
	app.logger.Info("application shutdown completed")
}
