package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rewardlab/event-platform/pkg/tokens"
	"github.com/rewardlab/event-platform/services/auth/internal/models"
	"github.com/rewardlab/event-platform/services/auth/internal/repo"
	"github.com/rewardlab/event-platform/services/auth/internal/service"
)

var testSecret = []byte("test-jwt-secret")

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Staff{}, &models.Permission{}))

	gormRepo := &repo.GormRepo{DB: db}
	permSvc := &service.PermissionService{Repo: gormRepo}
	require.NoError(t, permSvc.Reconcile(context.Background()))

	e := echo.New()
	Register(e, &Deps{AuthHandler: &AuthHTTP{
		Svc:  &service.AuthService{Repo: gormRepo, JWTSecret: testSecret},
		Perm: permSvc,
	}})
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func tokenFrom(t *testing.T, rec *httptest.ResponseRecorder) *tokens.Claims {
	t.Helper()

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	claims, err := tokens.Parse(resp.Token, testSecret)
	require.NoError(t, err)
	return claims
}

func TestRegisterAndLoginUser(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/auth/user/register", map[string]string{
		"username": "alice", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	claims := tokenFrom(t, rec)
	assert.Equal(t, tokens.UserTypeUser, claims.UserType)

	rec = doJSON(t, e, http.MethodPost, "/auth/user/register", map[string]string{
		"username": "alice", "password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User with this username already exists")

	rec = doJSON(t, e, http.MethodPost, "/auth/user/login", map[string]string{
		"username": "alice", "password": "secret",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/auth/user/login", map[string]string{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestRegisterStaff(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/auth/staff/register", map[string]string{
		"username": "bob", "password": "secret", "role": "operator",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	claims := tokenFrom(t, rec)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, tokens.UserTypeStaff, claims.UserType)

	rec = doJSON(t, e, http.MethodPost, "/auth/staff/register", map[string]string{
		"username": "mallory", "password": "secret", "role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/auth/user/register", map[string]string{
		"username": "alice", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	subject := tokenFrom(t, rec).Subject

	rec = doJSON(t, e, http.MethodGet, "/auth/verify/"+subject+"?type=USER", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"isActive":true}`, rec.Body.String())

	rec = doJSON(t, e, http.MethodDelete, "/auth/user/"+subject, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/auth/verify/"+subject+"?type=USER", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"isActive":false}`, rec.Body.String())
}

func TestCheckPermissionEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/auth/permission/check", map[string]string{
		"role": "auditor", "permission": "request_reward:read",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"allowed":true}`, rec.Body.String())

	rec = doJSON(t, e, http.MethodPost, "/auth/permission/check", map[string]string{
		"role": "user", "permission": "event:delete",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"allowed":false}`, rec.Body.String())
}

func TestDeactivateUnknownAccount(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodDelete, "/auth/user/5f4dcc3b-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, "/auth/staff/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
