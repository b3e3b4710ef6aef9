package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/blog-api/internal/domain"
)

// CredentialsRequest is the body of both signup and signin.
type CredentialsRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by signup and signin.
type TokenResponse struct {
	JWT string `json:"jwt"`
}

// CreatePostRequest is the body of POST /api/v1/blog. Absent fields decode to nil.
type CreatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// UpdatePostRequest is the body of PUT /api/v1/blog. Nil fields are left unchanged.
type UpdatePostRequest struct {
	ID      string  `json:"id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// CreatePostResponse is returned when a post is created.
type CreatePostResponse struct {
	ID uuid.UUID `json:"id"`
}

// UpdatePostResponse is returned when a post is updated.
type UpdatePostResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

// PostResponse is the public representation of a post.
type PostResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  uuid.UUID `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func postToResponse(p *domain.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func postsToResponse(posts []*domain.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, postToResponse(p))
	}
	return out
}
