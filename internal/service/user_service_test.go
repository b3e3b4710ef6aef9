package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/postgres"
	"github.com/phrazzld/blog-api/internal/service"
	"github.com/phrazzld/blog-api/internal/store"
	"github.com/phrazzld/blog-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*service.UserServiceImpl, *postgres.PostgresUserStore) {
	t.Helper()
	db := testutils.NewTestDB(t)
	users := postgres.NewPostgresUserStore(db, testutils.DiscardLogger())
	return service.NewUserService(users, db, testutils.DiscardLogger()), users
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates user", func(t *testing.T) {
		svc, users := newUserService(t)

		user, err := svc.Register(ctx, "new@example.com", "pw")

		require.NoError(t, err)
		stored, err := users.GetByEmail(ctx, "new@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("existing email", func(t *testing.T) {
		svc, _ := newUserService(t)
		_, err := svc.Register(ctx, "taken@example.com", "pw")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "taken@example.com", "other")

		assert.ErrorIs(t, err, service.ErrUserExists)
	})

	t.Run("empty fields", func(t *testing.T) {
		svc, _ := newUserService(t)

		_, err := svc.Register(ctx, "", "pw")
		assert.ErrorIs(t, err, domain.ErrEmptyEmail)

		_, err = svc.Register(ctx, "a@example.com", "")
		assert.ErrorIs(t, err, domain.ErrEmptyPassword)
	})

	t.Run("concurrent signups create one user", func(t *testing.T) {
		svc, _ := newUserService(t)

		var wg sync.WaitGroup
		errs := make([]error, 5)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Register(ctx, "race@example.com", "pw")
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, errors.Is(err, service.ErrUserExists), "unexpected error: %v", err)
		}
		assert.Equal(t, 1, succeeded)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newUserService(t)
	registered, err := svc.Register(ctx, "user@example.com", "right")
	require.NoError(t, err)

	t.Run("password is not compared", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "user@example.com", "wrong")

		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "right")

		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
