package middleware

import (
	"net/http"
	"strings"

	"stempede-store/internal/data/entity"
	"stempede-store/pkg/utils"

	"go.uber.org/zap"
)

const (
	UsernameHeader = "X-Username"
	RoleHeader     = "X-Role"
)

// Identity copies the acting principal set by the upstream gateway into the
// request context. Requests without a username are rejected.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := strings.TrimSpace(r.Header.Get(UsernameHeader))
			if username == "" {
				logger.Debug("Missing identity header", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role := strings.TrimSpace(r.Header.Get(RoleHeader))
			ctx := utils.SetUserContext(r.Context(), username, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through only when the acting role is one of
// roles. Must run after Identity.
func RequireRole(logger *zap.Logger, roles ...entity.RoleName) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := utils.GetUsernameFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			raw, _ := utils.GetRoleFromContext(r.Context())
			role, _ := entity.ParseRoleName(raw)
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("Role check: access denied",
				zap.String("username", username),
				zap.String("role", raw),
				zap.String("path", r.URL.Path))
			utils.ResponseForbidden(w, "You do not have permission to perform this action.")
		})
	}
}
