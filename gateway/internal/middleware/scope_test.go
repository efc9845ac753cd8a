package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardlab/event-platform/pkg/permissions"
)

func runScope(t *testing.T, target string, principal *permissions.Principal) *http.Request {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(ctxPrincipal, *principal)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	require.NoError(t, ScopeOwnRequests()(next)(c))
	return c.Request()
}

func TestScopeOwnRequests_PinsUserFilter(t *testing.T) {
	t.Parallel()

	p := &permissions.Principal{SubjectID: "user-1", Role: permissions.RoleUser}
	req := runScope(t, "/request-rewards", p)
	assert.Equal(t, "user-1", req.URL.Query().Get("userId"))
}

func TestScopeOwnRequests_OverridesSuppliedFilter(t *testing.T) {
	t.Parallel()

	p := &permissions.Principal{SubjectID: "user-1", Role: permissions.RoleUser}
	req := runScope(t, "/request-rewards?userId=somebody-else", p)
	assert.Equal(t, "user-1", req.URL.Query().Get("userId"))
}

func TestScopeOwnRequests_StaffUntouched(t *testing.T) {
	t.Parallel()

	p := &permissions.Principal{SubjectID: "staff-1", Role: permissions.RoleAuditor}
	req := runScope(t, "/request-rewards?userId=user-7", p)
	assert.Equal(t, "user-7", req.URL.Query().Get("userId"))
}

func TestScopeOwnRequests_NoPrincipalUntouched(t *testing.T) {
	t.Parallel()

	req := runScope(t, "/request-rewards?userId=user-7", nil)
	assert.Equal(t, "user-7", req.URL.Query().Get("userId"))
}
