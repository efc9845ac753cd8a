package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rewardlab/event-platform/pkg/logging"
	"github.com/rewardlab/event-platform/services/auth/internal/service"
)

type AuthHTTP struct {
	Svc  *service.AuthService
	Perm *service.PermissionService
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AuthHTTP) RegisterUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register_user")

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, err := h.Svc.RegisterUser(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConflict):
			return echo.NewHTTPError(http.StatusBadRequest, "User with this username already exists")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "register failed")
	}

	l.Info("register_successful")
	return c.JSON(http.StatusCreated, echo.Map{"token": token})
}

func (h *AuthHTTP) LoginUser(c echo.Context) error {
	return h.login(c, "auth_login_user", h.Svc.LoginUser)
}

func (h *AuthHTTP) RegisterStaff(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register_staff")

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, err := h.Svc.RegisterStaff(ctx, req.Username, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConflict):
			return echo.NewHTTPError(http.StatusBadRequest, "User with this username already exists")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "register failed")
	}

	l.Info("register_successful")
	return c.JSON(http.StatusCreated, echo.Map{"token": token})
}

func (h *AuthHTTP) LoginStaff(c echo.Context) error {
	return h.login(c, "auth_login_staff", h.Svc.LoginStaff)
}

func (h *AuthHTTP) login(c echo.Context, handler string, loginFn func(ctx context.Context, username, password string) (string, error)) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", handler)

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, err := loginFn(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrValidation) {
			l.Warn("login_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	l.Info("login_successful")
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

func (h *AuthHTTP) Verify(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_verify")

	active, err := h.Svc.VerifyActive(ctx, c.QueryParam("type"), c.Param("id"))
	if err != nil {
		l.Error("verify_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "verify failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"isActive": active})
}

type checkPermissionRequest struct {
	Role       string `json:"role"`
	Permission string `json:"permission"`
}

func (h *AuthHTTP) CheckPermission(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_permission_check")

	var req checkPermissionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("permission_check_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	allowed, err := h.Perm.HasPermission(ctx, req.Role, req.Permission)
	if err != nil {
		l.Error("permission_check_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "permission check failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"allowed": allowed})
}

func (h *AuthHTTP) DeactivateUser(c echo.Context) error {
	return h.deactivate(c, "USER")
}

func (h *AuthHTTP) DeactivateStaff(c echo.Context) error {
	return h.deactivate(c, "STAFF")
}

func (h *AuthHTTP) deactivate(c echo.Context, userType string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_deactivate")

	if err := h.Svc.Deactivate(ctx, userType, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("deactivate_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "account not found")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
		}
		l.Error("deactivate_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "deactivate failed")
	}

	l.Info("deactivate_successful")
	return c.NoContent(http.StatusNoContent)
}
