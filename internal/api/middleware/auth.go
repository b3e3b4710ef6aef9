package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/service/auth"
)

// UnauthorizedMessage is the body of every authentication failure.
const UnauthorizedMessage = "Unauthorized"

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	if jwtService == nil {
		panic("jwtService cannot be nil")
	}
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the token in the Authorization header and adds the
// user ID to the request context.
//
// The token is the second space-separated word of the header; the scheme word
// in front of it is not inspected. Every failure is answered with the same
// 401 body.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		token, err := tokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug("rejected request without usable token", slog.String("reason", err.Error()))
			shared.RespondWithError(w, r, http.StatusUnauthorized, UnauthorizedMessage)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, UnauthorizedMessage, err)
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

var errMalformedHeader = errors.New("malformed authorization header")

func tokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) < 2 || parts[1] == "" {
		return "", errMalformedHeader
	}
	return parts[1], nil
}
