// Package main implements the entry point for the blog API server, which
// serves user signup/signin and authored blog posts over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/platform/postgres"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Printf("blog-api: %v", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging, connects to the database and
// serves until a shutdown signal arrives.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))
	// Only presence is logged; values are credentials.
	l.Debug("database configuration", slog.Bool("url_present", cfg.Database.URL != ""))
	l.Debug("auth configuration", slog.Bool("jwt_secret_present", cfg.Auth.JWTSecret != ""))

	db, err := postgres.Open(cfg.Database, l)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		_ = postgres.Close(db)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
