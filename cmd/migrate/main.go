// Command migrate applies the embedded SQL migrations that own the blog
// database schema.
//
// Usage:
//
//	migrate [-database-url URL] [-verbose] up|down|status|version|reset
//
// Without -database-url the URL comes from the same configuration sources as
// the server (BLOG_DATABASE_URL, DATABASE_URL, .env or config.yaml).
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/platform/postgres/migrations"
	"github.com/phrazzld/blog-api/internal/redact"
	"github.com/pressly/goose/v3"
)

// supportedCommands are the goose commands this tool exposes.
var supportedCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"status":  true,
	"version": true,
	"reset":   true,
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		slog.Error("migration failed", slog.String("error", redact.Error(err)))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	dbURL := fs.String("database-url", "", "PostgreSQL connection URL (defaults to configuration)")
	verbose := fs.Bool("verbose", false, "Enable verbose goose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	command, err := parseCommand(fs.Args())
	if err != nil {
		fs.Usage()
		return err
	}

	cfg, err := loadConfig(*dbURL)
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l = l.With(
		slog.String("correlation_id", uuid.NewString()),
		slog.String("component", "migrations"),
		slog.String("command", command),
	)

	return migrate(ctx, l, cfg.Database.URL, command, *verbose)
}

// parseCommand returns the single positional command.
func parseCommand(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one command, got %d", len(args))
	}
	if !supportedCommands[args[0]] {
		return "", fmt.Errorf("unsupported command %q", args[0])
	}
	return args[0], nil
}

// loadConfig reads the configuration, letting an explicit URL win.
func loadConfig(dbURL string) (*config.Config, error) {
	if dbURL != "" {
		return &config.Config{
			Server:   config.ServerConfig{LogLevel: "info"},
			Database: config.DatabaseConfig{URL: dbURL},
		}, nil
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func migrate(ctx context.Context, l *slog.Logger, dbURL, command string, verbose bool) error {
	start := time.Now()
	l.Info("starting migration operation", slog.Bool("verbose", verbose))

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrations.TableName)
	goose.SetLogger(newSlogGooseLogger(l))
	goose.SetVerbose(verbose)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Error("error closing database connection", slog.Any("error", err))
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, migrations.Dir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	l.Info("migration operation completed",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// slogGooseLogger forwards goose output to slog. Fatalf logs and then exits
// with status 1, as goose expects of a fatal logger.
type slogGooseLogger struct {
	logger *slog.Logger
	exit   func(code int)
}

func newSlogGooseLogger(l *slog.Logger) *slogGooseLogger {
	return &slogGooseLogger{logger: l, exit: os.Exit}
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
	l.exit(1)
}
