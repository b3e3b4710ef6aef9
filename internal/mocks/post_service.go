package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// PostService is a testify mock of service.PostService
type PostService struct {
	mock.Mock
}

var _ service.PostService = (*PostService)(nil)

// CreatePost implements service.PostService
func (m *PostService) CreatePost(
	ctx context.Context,
	authorID uuid.UUID,
	title, content *string,
) (*domain.Post, error) {
	args := m.Called(ctx, authorID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

// UpdatePost implements service.PostService
func (m *PostService) UpdatePost(
	ctx context.Context,
	id, authorID uuid.UUID,
	title, content *string,
) (*domain.Post, error) {
	args := m.Called(ctx, id, authorID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

// GetPost implements service.PostService
func (m *PostService) GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

// ListPosts implements service.PostService
func (m *PostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Post), args.Error(1)
}
