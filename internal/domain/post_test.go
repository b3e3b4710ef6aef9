package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewPost(t *testing.T) {
	authorID := uuid.New()

	post, err := NewPost(authorID, strPtr("T"), strPtr("C"))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, post.ID)
	assert.Equal(t, "T", post.Title)
	assert.Equal(t, "C", post.Content)
	assert.Equal(t, authorID, post.AuthorID)
}

func TestNewPostAcceptsEmptyStrings(t *testing.T) {
	post, err := NewPost(uuid.New(), strPtr(""), strPtr(""))

	require.NoError(t, err)
	assert.Empty(t, post.Title)
	assert.Empty(t, post.Content)
}

func TestNewPostValidation(t *testing.T) {
	tests := []struct {
		name     string
		authorID uuid.UUID
		title    *string
		content  *string
		wantErr  error
	}{
		{name: "missing title", authorID: uuid.New(), content: strPtr("C"), wantErr: ErrMissingTitle},
		{name: "missing content", authorID: uuid.New(), title: strPtr("T"), wantErr: ErrMissingContent},
		{name: "no author", authorID: uuid.Nil, title: strPtr("T"), content: strPtr("C"), wantErr: ErrEmptyPostAuthorID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := NewPost(tt.authorID, tt.title, tt.content)

			assert.Nil(t, post)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
