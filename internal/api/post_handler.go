package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/service"
)

// PostHandler serves the blog routes.
type PostHandler struct {
	postService service.PostService
	logger      *slog.Logger
}

// NewPostHandler creates a new PostHandler with the given dependencies.
func NewPostHandler(postService service.PostService, logger *slog.Logger) *PostHandler {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &PostHandler{
		postService: postService,
		logger:      logger.With(slog.String("component", "post_handler")),
	}
}

// Routes returns the router mounted at /api/v1/blog. Reads are public; writes
// go through authenticate.
//
// /bulk is registered as a static route so it is never captured by /{id}.
func (h *PostHandler) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(NotFound)

	r.Get("/bulk", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", h.Create)
		r.Put("/", h.Update)
	})

	return r
}

// Create handles POST /. Every failure after authentication, an unreadable
// body included, is answered with the same 500.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, MsgUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgCreatePostFailed, err)
		return
	}

	post, err := h.postService.CreatePost(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgCreatePostFailed, err)
		return
	}

	log.Debug("post created", slog.String("post_id", post.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, CreatePostResponse{ID: post.ID})
}

// Update handles PUT /. Only the author can update a post; any mismatch,
// including an unknown or malformed id or an unreadable body, is answered
// with 500.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusForbidden, MsgUnauthorized)
		return
	}

	var req UpdatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgUpdatePostFailed, err)
		return
	}

	postID, err := uuid.Parse(req.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgUpdatePostFailed, err)
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), postID, userID, req.Title, req.Content)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgUpdatePostFailed, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UpdatePostResponse{
		ID:      post.ID,
		Message: MsgPostUpdated,
	})
}

// Get handles GET /{id}. Ids that are not UUIDs cannot match a post and get 404.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, MsgPostNotFound, err)
		return
	}

	post, err := h.postService.GetPost(r.Context(), postID)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusNotFound {
			shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, MsgPostNotFound, err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgFetchPostFailed, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// List handles GET /bulk.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListPosts(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgFetchPostsFailed, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postsToResponse(posts))
}
