package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/service"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/phrazzld/blog-api/internal/store"
)

// UserHandler serves signup and signin.
type UserHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *UserHandler {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &UserHandler{
		userService: userService,
		jwtService:  jwtService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// Routes returns the router mounted at /api/v1/user.
func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(NotFound)
	r.Post("/signup", h.Signup)
	r.Post("/signin", h.Signin)
	return r
}

// Signup handles POST /signup.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CredentialsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgCredentialsRequired, err)
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch MapErrorToStatusCode(err) {
		case http.StatusConflict:
			shared.RespondWithErrorAndLog(w, r, http.StatusConflict, MsgUserExists, err)
		case http.StatusBadRequest:
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgCredentialsRequired, err)
		default:
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgSignupFailed, err)
		}
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgSignupFailed, err)
		return
	}

	log.Debug("signup completed", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{JWT: token})
}

// Signin handles POST /signin. A missing email is looked up like any other
// and ends in 403.
func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, MsgUserNotFound, err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgSigninFailed, err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgSigninFailed, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{JWT: token})
}
