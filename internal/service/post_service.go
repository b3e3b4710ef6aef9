package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
)

// PostService provides the post use cases.
type PostService interface {
	// CreatePost stores a new post by authorID. A nil title or content is a
	// validation error.
	CreatePost(ctx context.Context, authorID uuid.UUID, title, content *string) (*domain.Post, error)

	// UpdatePost changes the given fields of the post matching both id and
	// authorID. Returns store.ErrPostNotFound if there is no such post.
	UpdatePost(ctx context.Context, id, authorID uuid.UUID, title, content *string) (*domain.Post, error)

	// GetPost returns a single post.
	GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// ListPosts returns every post.
	ListPosts(ctx context.Context) ([]*domain.Post, error)
}

// PostServiceImpl implements the PostService interface
type PostServiceImpl struct {
	postStore store.PostStore
	logger    *slog.Logger
}

// NewPostService creates a new PostService.
func NewPostService(postStore store.PostStore, logger *slog.Logger) *PostServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostServiceImpl{
		postStore: postStore,
		logger:    logger.With("component", "post_service"),
	}
}

var _ PostService = (*PostServiceImpl)(nil)

// CreatePost implements PostService.CreatePost
func (s *PostServiceImpl) CreatePost(
	ctx context.Context,
	authorID uuid.UUID,
	title, content *string,
) (*domain.Post, error) {
	post, err := domain.NewPost(authorID, title, content)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("rejected post", "error", err)
		return nil, NewServiceError("create_post", "invalid post", err)
	}

	if err := s.postStore.Create(ctx, post); err != nil {
		return nil, NewServiceError("create_post", "failed to save post", err)
	}
	return post, nil
}

// UpdatePost implements PostService.UpdatePost
func (s *PostServiceImpl) UpdatePost(
	ctx context.Context,
	id, authorID uuid.UUID,
	title, content *string,
) (*domain.Post, error) {
	post, err := s.postStore.Update(ctx, id, authorID, store.PostUpdate{Title: title, Content: content})
	if err != nil {
		return nil, NewServiceError("update_post", "failed to update post", err)
	}
	return post, nil
}

// GetPost implements PostService.GetPost
func (s *PostServiceImpl) GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.postStore.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_post", "failed to retrieve post", err)
	}
	return post, nil
}

// ListPosts implements PostService.ListPosts
func (s *PostServiceImpl) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.postStore.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_posts", "failed to list posts", err)
	}
	return posts, nil
}
