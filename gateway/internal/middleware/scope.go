package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/rewardlab/event-platform/pkg/permissions"
)

// ScopeOwnRequests pins the userId filter to the caller for plain user
// principals, so a listing can never return another user's records even
// if the client supplies its own filter.
func ScopeOwnRequests() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p, ok := PrincipalFrom(c); ok && p.Role == permissions.RoleUser {
				q := c.Request().URL.Query()
				q.Set("userId", p.SubjectID)
				c.Request().URL.RawQuery = q.Encode()
			}
			return next(c)
		}
	}
}
