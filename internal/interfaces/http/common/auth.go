package common

import (
	"context"
	"log"
	"net/http"
)

type contextKey string

const authUserContextKey contextKey = "authUser"

// AuthenticatedUser represents the JWT-derived principal.
type AuthenticatedUser struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role string `json:"role"`
}

// ContextWithUser stores the authenticated user into context.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(AuthenticatedUser)
	return user, ok
}

// RequireRole は認証ミドルウェアの後段で使い、ロールが一致しないリクエストを 403 で拒否する。
func RequireRole(logger *log.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				WriteError(logger, w, http.StatusUnauthorized, "not authorized, no token")
				return
			}
			if _, ok := allowed[user.Role]; !ok {
				WriteError(logger, w, http.StatusForbidden, "user role is not authorized to access this route")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
