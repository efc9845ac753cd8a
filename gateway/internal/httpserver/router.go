package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rewardlab/event-platform/gateway/internal/middleware"
	"github.com/rewardlab/event-platform/pkg/permissions"
)

type Deps struct {
	AuthURL  string
	EventURL string

	JWTSecret []byte

	Live middleware.LivenessChecker
	Perm middleware.PermissionChecker
}

// StripAPIPrefix removes an optional /api prefix so clients may call either
// /events or /api/events.
func StripAPIPrefix() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := c.Request().URL.Path
			if p == "/api" {
				c.Request().URL.Path = "/"
			} else if strings.HasPrefix(p, "/api/") {
				c.Request().URL.Path = strings.TrimPrefix(p, "/api")
			}
			return next(c)
		}
	}
}

func Register(e *echo.Echo, d *Deps) error {
	e.Pre(StripAPIPrefix())

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, m := range middleware.Common() {
		e.Use(m)
	}

	authProxy, err := newProxy(Rule{Target: d.AuthURL})
	if err != nil {
		return err
	}
	eventProxy, err := newProxy(Rule{Target: d.EventURL})
	if err != nil {
		return err
	}

	// Only the routes a caller needs before holding a token are public.
	// Everything else on the auth surface stays behind authentication:
	// a blanket /auth/* passthrough would expose account deactivation
	// to anonymous callers.
	e.POST("/auth/user/register", authProxy)
	e.POST("/auth/user/login", authProxy)
	e.POST("/auth/staff/register", authProxy)
	e.POST("/auth/staff/login", authProxy)
	e.GET("/auth/verify/:id", authProxy)

	require := func(perms ...string) echo.MiddlewareFunc {
		return middleware.Require(d.Perm, perms...)
	}

	g := e.Group("", middleware.Authenticate(d.JWTSecret, d.Live))

	// Deactivation locks the account out for good; admin only.
	g.DELETE("/auth/user/*", authProxy, middleware.RequireAdmin())
	g.DELETE("/auth/staff/*", authProxy, middleware.RequireAdmin())
	g.POST("/auth/permission/check", authProxy)

	eventRead := permissions.Value(permissions.ResourceEvent, permissions.ActionRead)
	g.GET("/events", eventProxy, require(eventRead))
	g.GET("/events/*", eventProxy, require(eventRead))
	g.POST("/events", eventProxy, require(permissions.Value(permissions.ResourceEvent, permissions.ActionCreate)))
	eventUpdate := require(permissions.Value(permissions.ResourceEvent, permissions.ActionUpdate))
	g.PUT("/events/*", eventProxy, eventUpdate)
	g.PATCH("/events/*", eventProxy, eventUpdate)
	g.DELETE("/events/*", eventProxy, require(permissions.Value(permissions.ResourceEvent, permissions.ActionDelete)))

	rewardRead := permissions.Value(permissions.ResourceReward, permissions.ActionRead)
	g.GET("/rewards", eventProxy, require(rewardRead))
	g.GET("/rewards/*", eventProxy, require(rewardRead))
	g.POST("/rewards", eventProxy, require(permissions.Value(permissions.ResourceReward, permissions.ActionCreate)))
	rewardUpdate := require(permissions.Value(permissions.ResourceReward, permissions.ActionUpdate))
	g.PUT("/rewards/*", eventProxy, rewardUpdate)
	g.PATCH("/rewards/*", eventProxy, rewardUpdate)
	g.DELETE("/rewards/*", eventProxy, require(permissions.Value(permissions.ResourceReward, permissions.ActionDelete)))

	// Plain users only hold read_own, so listing grants on either
	// permission and the scope middleware pins the filter to the caller.
	rrRead := permissions.Value(permissions.ResourceRequestReward, permissions.ActionRead)
	rrReadOwn := permissions.Value(permissions.ResourceRequestReward, permissions.ActionReadOwn)
	g.GET("/request-rewards", eventProxy, require(rrRead, rrReadOwn), middleware.ScopeOwnRequests())
	g.GET("/request-rewards/*", eventProxy, require(rrRead, rrReadOwn))
	g.POST("/request-rewards", eventProxy, require(permissions.Value(permissions.ResourceRequestReward, permissions.ActionCreate)))
	g.PATCH("/request-rewards/process", eventProxy, require(permissions.Value(permissions.ResourceRequestReward, permissions.ActionUpdate)))
	g.DELETE("/request-rewards/*", eventProxy, require(permissions.Value(permissions.ResourceRequestReward, permissions.ActionDelete)))

	// Check-in only needs an authenticated principal.
	g.POST("/attendance", eventProxy)

	e.Any("/*", func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Error proxying request",
			"details": "service not found for path " + c.Request().URL.Path,
		})
	})

	return nil
}
