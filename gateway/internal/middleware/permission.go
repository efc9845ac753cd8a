package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rewardlab/event-platform/pkg/logging"
	"github.com/rewardlab/event-platform/pkg/permissions"
)

// PermissionChecker asks the auth service whether a role carries a
// permission.
type PermissionChecker interface {
	CheckPermission(ctx context.Context, role, permission string) (bool, error)
}

// Require grants the request when the principal's role carries any of the
// given permissions. Admin passes without consulting the registry; an empty
// permission list means the route only needs authentication.
func Require(checker PermissionChecker, perms ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(perms) == 0 {
				return next(c)
			}

			p, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if permissions.IsAdmin(p.Role) {
				return next(c)
			}

			l := logging.FromContext(c.Request().Context()).With("middleware", "require_permission", "role", p.Role)
			for _, perm := range perms {
				allowed, err := checker.CheckPermission(c.Request().Context(), p.Role, perm)
				if err != nil {
					l.Error("permission_check_failed", "permission", perm, "error", err)
					return echo.NewHTTPError(http.StatusUnauthorized, "Insufficient permissions")
				}
				if allowed {
					return next(c)
				}
			}

			l.Warn("permission_denied", "permissions", perms)
			return echo.NewHTTPError(http.StatusUnauthorized, "Insufficient permissions")
		}
	}
}

// RequireAdmin grants the request only to admin principals. For routes
// that no stored permission covers, such as account deactivation.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if !permissions.IsAdmin(p.Role) {
				logging.FromContext(c.Request().Context()).Warn("permission_denied",
					"middleware", "require_admin", "role", p.Role)
				return echo.NewHTTPError(http.StatusUnauthorized, "Insufficient permissions")
			}
			return next(c)
		}
	}
}
