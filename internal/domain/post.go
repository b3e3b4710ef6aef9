package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Post
var (
	ErrEmptyPostID       = fmt.Errorf("%w: post ID cannot be empty", ErrValidation)
	ErrEmptyPostAuthorID = fmt.Errorf("%w: post author ID cannot be empty", ErrValidation)
	ErrMissingTitle      = fmt.Errorf("%w: post title is required", ErrValidation)
	ErrMissingContent    = fmt.Errorf("%w: post content is required", ErrValidation)
)

// Post is a blog entry written by a single author.
// Only its author may change it; anybody may read it.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  uuid.UUID `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPost creates a Post owned by authorID.
//
// Title and content are pointers so that an absent field can be told apart
// from an empty one: absence is an error, an empty string is accepted.
func NewPost(authorID uuid.UUID, title, content *string) (*Post, error) {
	if title == nil {
		return nil, ErrMissingTitle
	}
	if content == nil {
		return nil, ErrMissingContent
	}

	now := time.Now().UTC()
	post := &Post{
		ID:        uuid.New(),
		Title:     *title,
		Content:   *content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid identifiers.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPostID
	}
	if p.AuthorID == uuid.Nil {
		return ErrEmptyPostAuthorID
	}
	return nil
}
