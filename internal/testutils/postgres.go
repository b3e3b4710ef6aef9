package testutils

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/postgres"
	"github.com/phrazzld/blog-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// gooseMu serializes use of goose's package-level configuration.
var gooseMu sync.Mutex

// NewPostgresTestDB connects to the database named by BLOG_TEST_DATABASE_URL
// and brings its schema up to date with the embedded migrations. The test is
// skipped when the variable is unset.
//
// Tests share the database; use WithTx to keep their writes isolated.
func NewPostgresTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbURL := os.Getenv(TestDatabaseURLEnv)
	if dbURL == "" {
		t.Skipf("%s not set, skipping PostgreSQL integration test", TestDatabaseURLEnv)
	}

	db, err := postgres.Open(config.DatabaseConfig{
		URL:          dbURL,
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}, DiscardLogger())
	require.NoError(t, err, "failed to connect to test database")

	t.Cleanup(func() {
		if err := postgres.Close(db); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	require.NoError(t, applyMigrations(db), "failed to migrate test database")
	return db
}

func applyMigrations(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrations.TableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(sqlDB, migrations.Dir)
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// against a shared database leave nothing behind.
func WithTx(t *testing.T, db *gorm.DB, fn func(t *testing.T, tx *gorm.DB)) {
	t.Helper()

	tx := db.Begin()
	require.NoError(t, tx.Error, "failed to begin transaction")

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
		if err := tx.Rollback().Error; err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
