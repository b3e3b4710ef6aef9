package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/redact"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold is the duration above which a statement is logged at WARN.
const slowQueryThreshold = 200 * time.Millisecond

// GormLogger routes GORM's log output through slog.
//
// Statement text is never logged because bound values include user passwords;
// only timing, row counts and redacted errors are recorded.
type GormLogger struct {
	logger *slog.Logger
	level  gormlogger.LogLevel
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger creates a GormLogger at the Warn level.
func NewGormLogger(l *slog.Logger) *GormLogger {
	if l == nil {
		l = slog.Default()
	}
	return &GormLogger{
		logger: l.With(slog.String("component", "orm")),
		level:  gormlogger.Warn,
	}
}

// LogMode implements gormlogger.Interface.
func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface.
func (g *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		g.log(ctx).Info(redact.String(fmt.Sprintf(msg, args...)))
	}
}

// Warn implements gormlogger.Interface.
func (g *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.log(ctx).Warn(redact.String(fmt.Sprintf(msg, args...)))
	}
}

// Error implements gormlogger.Interface.
func (g *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		g.log(ctx).Error(redact.String(fmt.Sprintf(msg, args...)))
	}
}

// Trace implements gormlogger.Interface.
func (g *GormLogger) Trace(
	ctx context.Context,
	begin time.Time,
	fc func() (sql string, rowsAffected int64),
	err error,
) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	_, rows := fc()
	attrs := []any{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
	}

	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		g.log(ctx).Error("query failed", append(attrs, slog.String("error", redact.Error(err)))...)
	case elapsed > slowQueryThreshold && g.level >= gormlogger.Warn:
		g.log(ctx).Warn("slow query", attrs...)
	case g.level >= gormlogger.Info:
		g.log(ctx).Debug("query executed", attrs...)
	}
}

func (g *GormLogger) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, g.logger)
}
