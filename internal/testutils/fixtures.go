package testutils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// DefaultPassword is the password fixtures are created with.
const DefaultPassword = "password123"

// MustCreateUser stores a user with DefaultPassword and returns it.
func MustCreateUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, DefaultPassword)
	require.NoError(t, err)

	err = postgres.NewPostgresUserStore(db, DiscardLogger()).Create(context.Background(), user)
	require.NoError(t, err, "failed to create fixture user")
	return user
}

// MustCreatePost stores a post by authorID and returns it.
func MustCreatePost(t *testing.T, db *gorm.DB, authorID uuid.UUID, title, content string) *domain.Post {
	t.Helper()

	post, err := domain.NewPost(authorID, &title, &content)
	require.NoError(t, err)

	err = postgres.NewPostgresPostStore(db, DiscardLogger()).Create(context.Background(), post)
	require.NoError(t, err, "failed to create fixture post")
	return post
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
