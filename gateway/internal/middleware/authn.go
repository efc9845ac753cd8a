package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rewardlab/event-platform/pkg/logging"
	"github.com/rewardlab/event-platform/pkg/permissions"
	"github.com/rewardlab/event-platform/pkg/tokens"
)

const ctxPrincipal = "principal"

// LivenessChecker re-confirms that the account behind a token still exists
// and is active. A valid signature alone is not enough: deactivation must
// take effect before the token expires.
type LivenessChecker interface {
	VerifyActive(ctx context.Context, userType, id string) (bool, error)
}

// Authenticate extracts and verifies the bearer token, re-checks account
// liveness against the auth service, and attaches the resulting Principal
// to the request. Every failure is a uniform 401.
func Authenticate(secret []byte, live LivenessChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "authenticate")

			token := bearerToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			claims, err := tokens.Parse(token, secret)
			if err != nil {
				l.Warn("token_rejected", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			active, err := live.VerifyActive(c.Request().Context(), claims.UserType, claims.Subject)
			if err != nil {
				// Unconfirmed liveness is denied with the same message as
				// every other failure; the cause stays in the log only.
				l.Error("liveness_check_failed", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if !active {
				l.Warn("inactive_principal", "subject", claims.Subject)
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			role := claims.Role
			if role == "" && claims.UserType == tokens.UserTypeUser {
				role = permissions.RoleUser
			}
			c.Set(ctxPrincipal, permissions.Principal{
				SubjectID: claims.Subject,
				Username:  claims.Username,
				Role:      role,
				UserType:  claims.UserType,
			})
			return next(c)
		}
	}
}

// PrincipalFrom returns the authenticated principal, if Authenticate ran.
func PrincipalFrom(c echo.Context) (permissions.Principal, bool) {
	p, ok := c.Get(ctxPrincipal).(permissions.Principal)
	return p, ok
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
