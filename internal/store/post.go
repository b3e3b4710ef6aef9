package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/blog-api/internal/domain"
	"gorm.io/gorm"
)

// PostUpdate carries the fields of a partial post update.
// A nil field is left untouched.
type PostUpdate struct {
	Title   *string
	Content *string
}

// Empty reports whether the update changes nothing.
func (u PostUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil
}

// PostStore defines the interface for post data persistence.
type PostStore interface {
	// Create saves a new post. The author must exist.
	// Returns ErrInvalidEntity if the post fails validation or the author is unknown.
	Create(ctx context.Context, post *domain.Post) error

	// Update applies the non-nil fields of update to the post matching both
	// id and authorID, and returns the post as stored afterwards.
	// Returns ErrPostNotFound when no post matches both keys.
	Update(ctx context.Context, id, authorID uuid.UUID, update PostUpdate) (*domain.Post, error)

	// GetByID retrieves a post by its unique ID.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// List returns every post. The order is unspecified and an empty store
	// yields an empty, non-nil slice.
	List(ctx context.Context) ([]*domain.Post, error)

	// WithTx returns a new PostStore instance that uses the provided transaction.
	WithTx(tx *gorm.DB) PostStore
}
