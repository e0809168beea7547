package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/taskwell/taskwell-api/internal/api/shared"
	"github.com/taskwell/taskwell-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
//
// Every failure before the handler runs, from a missing header to a bad
// signature, is answered with 403: the middleware gates access to the
// protected surface, while 401 is reserved for failed signin credentials.
type AuthMiddleware struct {
	tokenService auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate validates JWT tokens from the Authorization header and adds
// the authenticated identity to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusForbidden, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusForbidden, "Invalid authorization format")
			return
		}

		claims, err := m.tokenService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Token expired", err)
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Invalid token", err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.IdentityContextKey, claims.Identity())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity extracts the authenticated identity from the request context.
// Returns the identity and a boolean indicating if it was found.
func GetIdentity(r *http.Request) (auth.Identity, bool) {
	identity, ok := r.Context().Value(shared.IdentityContextKey).(auth.Identity)
	return identity, ok
}
