package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardlab/event-platform/pkg/permissions"
)

type fakeChecker struct {
	granted map[string]bool
	err     error
	calls   int
}

func (f *fakeChecker) CheckPermission(_ context.Context, role, permission string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.granted[role+"|"+permission], nil
}

func runRequire(t *testing.T, principal *permissions.Principal, checker PermissionChecker, perms ...string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(ctxPrincipal, *principal)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Require(checker, perms...)(next)(c)
	return rec, err
}

func requireInsufficient(t *testing.T, err error) {
	t.Helper()

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "Insufficient permissions", he.Message)
}

func TestRequire_NoPermissionsPassesThrough(t *testing.T) {
	t.Parallel()

	checker := &fakeChecker{}
	rec, err := runRequire(t, nil, checker)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, checker.calls)
}

func TestRequire_NoPrincipal(t *testing.T) {
	t.Parallel()

	_, err := runRequire(t, nil, &fakeChecker{}, "event:read")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequire_AdminSkipsRegistry(t *testing.T) {
	t.Parallel()

	checker := &fakeChecker{}
	p := &permissions.Principal{SubjectID: "1", Role: permissions.RoleAdmin}
	rec, err := runRequire(t, p, checker, "event:delete")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, checker.calls, "admin must never consult the registry")
}

func TestRequire_Granted(t *testing.T) {
	t.Parallel()

	checker := &fakeChecker{granted: map[string]bool{"operator|event:create": true}}
	p := &permissions.Principal{SubjectID: "1", Role: permissions.RoleOperator}
	rec, err := runRequire(t, p, checker, "event:create")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequire_AnyOfGrants(t *testing.T) {
	t.Parallel()

	checker := &fakeChecker{granted: map[string]bool{"user|request_reward:read_own": true}}
	p := &permissions.Principal{SubjectID: "1", Role: permissions.RoleUser}
	rec, err := runRequire(t, p, checker, "request_reward:read", "request_reward:read_own")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, checker.calls)
}

func TestRequire_Denied(t *testing.T) {
	t.Parallel()

	checker := &fakeChecker{}
	p := &permissions.Principal{SubjectID: "1", Role: permissions.RoleUser}
	_, err := runRequire(t, p, checker, "event:delete")
	requireInsufficient(t, err)
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	run := func(principal *permissions.Principal) (*httptest.ResponseRecorder, error) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodDelete, "/auth/user/1", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if principal != nil {
			c.Set(ctxPrincipal, *principal)
		}
		next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
		return rec, RequireAdmin()(next)(c)
	}

	rec, err := run(&permissions.Principal{SubjectID: "1", Role: permissions.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err = run(&permissions.Principal{SubjectID: "1", Role: permissions.RoleOperator})
	requireInsufficient(t, err)

	_, err = run(&permissions.Principal{SubjectID: "1", Role: permissions.RoleUser})
	requireInsufficient(t, err)

	_, err = run(nil)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequire_CheckerError(t *testing.T) {
	t.Parallel()

	checker := &fakeChecker{err: errors.New("auth service down")}
	p := &permissions.Principal{SubjectID: "1", Role: permissions.RoleOperator}
	_, err := runRequire(t, p, checker, "event:create")
	requireInsufficient(t, err)
}
