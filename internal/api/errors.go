package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/service"
	"github.com/phrazzld/blog-api/internal/store"
)

// Client-facing error messages.
const (
	MsgInvalidRequest      = "Invalid request format"
	MsgCredentialsRequired = "Email and password are required"
	MsgUserExists          = "User already exists"
	MsgSignupFailed        = "Error while signing up"
	MsgUserNotFound        = "User not found"
	MsgSigninFailed        = "Error while signing in"
	MsgUnauthorized        = "Unauthorized"
	MsgCreatePostFailed    = "Error creating post"
	MsgUpdatePostFailed    = "Error updating post"
	MsgPostUpdated         = "Updated post"
	MsgPostNotFound        = "Post not found"
	MsgFetchPostFailed     = "Error fetching post"
	MsgFetchPostsFailed    = "Error fetching posts"
	MsgNotFound            = "Not found"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes by error
// kind. Handlers that must answer with a fixed code for an operation do not
// use it.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, service.ErrUserExists), store.IsDuplicateError(err):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// NotFound answers unknown paths and unsupported methods with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, MsgNotFound)
}
