package testutils

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/blog-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// testDSN opens a private in-memory database with foreign keys enforced.
const testDSN = "file::memory:?_pragma=foreign_keys(1)"

// TestDatabaseURLEnv names the variable that points integration tests at a
// real PostgreSQL database.
const TestDatabaseURLEnv = "BLOG_TEST_DATABASE_URL"

// sqliteDialector is the GORM sqlite dialector driven by the pure-Go modernc
// driver. It adds translation of modernc constraint errors so that stores see
// the same gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated values the
// postgres dialector produces.
type sqliteDialector struct {
	*sqlite.Dialector
}

// Translate implements gorm.ErrorTranslator.
func (d sqliteDialector) Translate(err error) error {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return gorm.ErrDuplicatedKey
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return gorm.ErrForeignKeyViolated
	}

	// Older driver builds report only the primary result code.
	if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := sqliteErr.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return gorm.ErrDuplicatedKey
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return gorm.ErrForeignKeyViolated
		}
	}
	return err
}

// NewTestDB returns a GORM session over a fresh in-memory database that has
// the users and posts tables. The database is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dialector := sqliteDialector{&sqlite.Dialector{DriverName: "sqlite", DSN: testDSN}}

	db, err := postgres.OpenGorm(dialector, DiscardLogger())
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	require.NoError(t, postgres.AutoMigrate(db), "failed to migrate test database")
	return db
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
