package middleware

import (
	"context"
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// Context keys for storing user data in request context
type contextKey string

const (
	ClaimsContextKey contextKey = "claims"
)

// UserAuthMiddleware protects routes to only logged-in users
func (mw *Middleware) UserAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := lib.ExtractClaims(r, mw.authService.GetAccessTokenSecret())
		if err != nil {
			mw.logger.Warn("Failed to extract claims from request", gecho.Field("error", err))
			gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
			return
		}

		// Revoked tokens stay dead until they expire
		isBlacklisted, err := mw.cacheService.IsTokenBlacklisted(claims.Jti)
		if err != nil {
			mw.logger.Error("Failed to check token blacklist", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
			gecho.InternalServerError(w, gecho.Send())
			return
		}
		if isBlacklisted {
			mw.logger.Warn("Blacklisted token rejected", gecho.Field("jti", claims.Jti))
			gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuthMiddleware protects routes to only admin users.
// Must be used after UserAuthMiddleware.
func (mw *Middleware) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaimsFromContext(r.Context())
		if !ok {
			mw.logger.Warn("Admin route hit without claims in context")
			gecho.Forbidden(w, gecho.WithMessage("error.auth.accessDenied"), gecho.Send())
			return
		}

		// The token claim is the first gate; the role is re-checked against
		// the users table so a role change takes effect immediately
		if claims.Role != "admin" {
			mw.logger.Warn("Non-admin user attempted to access admin route", gecho.Field("user_id", claims.Sub), gecho.Field("role", claims.Role))
			gecho.Forbidden(w, gecho.WithMessage("error.auth.adminRequired"), gecho.Send())
			return
		}

		isAdmin, err := mw.authService.IsAdmin(claims.Sub)
		if err != nil {
			mw.logger.Error("Failed to verify admin role", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
			gecho.InternalServerError(w, gecho.Send())
			return
		}
		if !isAdmin {
			mw.logger.Warn("Token claims admin but users table disagrees", gecho.Field("user_id", claims.Sub))
			gecho.Forbidden(w, gecho.WithMessage("error.auth.adminRequired"), gecho.Send())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClaimsFromContext is a helper function to extract the claims from request context
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok
}
