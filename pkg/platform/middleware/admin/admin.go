package admin

import (
	"log/slog"
	"net/http"

	"lahu/pkg/requestcontext"
)

// RoleAdmin is the role claim granted to coordinators.
const RoleAdmin = "admin"

// RequireAdmin must run after auth.RequireAuth; it rejects principals whose
// role claim is not admin.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if requestcontext.Role(ctx) != RoleAdmin {
				logger.WarnContext(ctx, "admin role required",
					"request_id", requestcontext.RequestID(ctx),
					"user_id", requestcontext.UserID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"admin role required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
