package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/blog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, wantErr: store.ErrNotFound},
		{name: "no rows", err: sql.ErrNoRows, wantErr: store.ErrNotFound},
		{name: "translated duplicate", err: gorm.ErrDuplicatedKey, wantErr: store.ErrDuplicate},
		{name: "translated foreign key", err: gorm.ErrForeignKeyViolated, wantErr: store.ErrInvalidEntity},
		{name: "pg unique", err: &pgconn.PgError{Code: uniqueViolationCode}, wantErr: store.ErrDuplicate},
		{
			name:    "pg foreign key",
			err:     &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "posts_author_id_fkey"},
			wantErr: store.ErrInvalidEntity,
		},
		{name: "pg check", err: &pgconn.PgError{Code: checkViolationCode}, wantErr: store.ErrInvalidEntity},
		{
			name:    "wrapped pg not null",
			err:     fmt.Errorf("insert: %w", &pgconn.PgError{Code: notNullViolationCode, ColumnName: "title"}),
			wantErr: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			assert.ErrorIs(t, got, tt.wantErr)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, MapError(nil))
	})

	t.Run("unmapped error is returned unchanged", func(t *testing.T) {
		original := errors.New("connection reset")
		assert.Same(t, original, MapError(original))
	})
}

func TestViolationHelpers(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("x")))

	assert.True(t, IsForeignKeyViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, IsForeignKeyViolation(gorm.ErrDuplicatedKey))
}
