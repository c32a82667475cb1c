package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mwicaksana/construction-management/internal/auth"
	"github.com/mwicaksana/construction-management/internal/permissions"
)

// RequireAny gates a route on at least one of the named permissions.
// The names are resolved through the capability bitmask of the user in
// context; unknown names and a missing user both fail closed.
func RequireAny(names ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !permissions.HasAny(user.CapabilitySet, names) {
				slog.Warn("access denied: missing permission",
					"user_id", user.ID,
					"required_any", names,
					"role_label", user.RoleLabel())
				http.Error(w, "forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAll gates a route on every named permission. With no names the
// gate passes.
func RequireAll(names ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !permissions.HasAll(user.CapabilitySet, names) {
				slog.Warn("access denied: missing permission",
					"user_id", user.ID,
					"required_all", names,
					"role_label", user.RoleLabel())
				http.Error(w, "forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates a route on the admin flag.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !user.IsAdmin() {
				slog.Warn("access denied: admin required", "user_id", user.ID)
				http.Error(w, "forbidden: insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
