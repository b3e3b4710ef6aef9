//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/postgres"
	"github.com/phrazzld/blog-api/internal/store"
	"github.com/phrazzld/blog-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// These tests run the stores against the migrated PostgreSQL schema, so
// constraint violations come from real pgconn errors.

func TestPostgresIntegration_UserStore(t *testing.T) {
	db := testutils.NewPostgresTestDB(t)
	ctx := context.Background()

	testutils.WithTx(t, db, func(t *testing.T, tx *gorm.DB) {
		userStore := postgres.NewPostgresUserStore(tx, nil)

		user, err := domain.NewUser("integration@example.com", "p")
		require.NoError(t, err)
		require.NoError(t, userStore.Create(ctx, user))

		found, err := userStore.GetByEmail(ctx, "integration@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)

		dup, err := domain.NewUser("integration@example.com", "q")
		require.NoError(t, err)
		// A failed statement aborts a postgres transaction, so run it in a savepoint.
		err = tx.Transaction(func(sp *gorm.DB) error {
			return postgres.NewPostgresUserStore(sp, nil).Create(ctx, dup)
		})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestPostgresIntegration_PostStore(t *testing.T) {
	db := testutils.NewPostgresTestDB(t)
	ctx := context.Background()

	testutils.WithTx(t, db, func(t *testing.T, tx *gorm.DB) {
		postStore := postgres.NewPostgresPostStore(tx, nil)
		author := testutils.MustCreateUser(t, tx, "author-"+uuid.NewString()+"@example.com")
		other := testutils.MustCreateUser(t, tx, "other-"+uuid.NewString()+"@example.com")

		post, err := domain.NewPost(author.ID, testutils.StringPtr("T"), testutils.StringPtr("C"))
		require.NoError(t, err)
		require.NoError(t, postStore.Create(ctx, post))

		_, err = postStore.Update(ctx, post.ID, other.ID, store.PostUpdate{Title: testutils.StringPtr("x")})
		assert.ErrorIs(t, err, store.ErrPostNotFound)

		updated, err := postStore.Update(ctx, post.ID, author.ID, store.PostUpdate{Title: testutils.StringPtr("T2")})
		require.NoError(t, err)
		assert.Equal(t, "T2", updated.Title)
		assert.Equal(t, "C", updated.Content)

		orphan, err := domain.NewPost(uuid.New(), testutils.StringPtr("T"), testutils.StringPtr("C"))
		require.NoError(t, err)
		err = tx.Transaction(func(sp *gorm.DB) error {
			return postgres.NewPostgresPostStore(sp, nil).Create(ctx, orphan)
		})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}
