package middleware

import (
	"net/http"
	"slices"

	"laundry-be/internal/apperr"
	"laundry-be/internal/auth"
	"laundry-be/internal/logger"
	"laundry-be/internal/transport"
	"laundry-be/internal/utils"
)

// TokenParser verifies a session token.
type TokenParser interface {
	Parse(tokenStr string) (*auth.CustomClaims, error)
}

// Authenticate rejects requests without a valid session token and stores the
// caller identity in the request context.
func Authenticate(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				transport.WriteError(r.Context(), w, apperr.ErrUnauthorized)
				return
			}

			claims, err := parser.Parse(tokenStr)
			if err != nil {
				transport.WriteError(r.Context(), w, err)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.Identity())
			ctx = logger.WithActor(ctx, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows only callers whose role is listed. It must run after
// Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := utils.GetIdentityFromContext(r.Context())
			if !ok {
				transport.WriteError(r.Context(), w, apperr.ErrUnauthorized)
				return
			}
			if !slices.Contains(roles, id.Role) {
				transport.WriteError(r.Context(), w, apperr.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
