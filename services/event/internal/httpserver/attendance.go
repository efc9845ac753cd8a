package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rewardlab/event-platform/pkg/logging"
	"github.com/rewardlab/event-platform/pkg/permissions"
	"github.com/rewardlab/event-platform/services/event/internal/repo"
	"github.com/rewardlab/event-platform/services/event/internal/service"
	"github.com/rewardlab/event-platform/services/event/internal/transport"
)

type AttendanceHTTP struct {
	Svc *service.AttendanceService
}

func (h *AttendanceHTTP) CheckIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "attendance.check_in")

	var req transport.CreateAttendanceRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("check_in_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	day := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		day = parsed
	}

	userID := c.Request().Header.Get(permissions.HeaderUserID)
	att, err := h.Svc.CheckIn(ctx, userID, day)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrAlreadyCheckedIn):
			l.Warn("check_in_failed", "status", 400, "reason", "duplicate day")
			return echo.NewHTTPError(http.StatusBadRequest, "already checked in today")
		case errors.Is(err, service.ErrValidation):
			l.Warn("check_in_failed", "status", 400, "reason", "missing user id")
			return echo.NewHTTPError(http.StatusBadRequest, "missing user identity")
		}
		l.Error("check_in_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot record attendance")
	}

	l.Info("check_in_success", "user_id", userID)
	return c.JSON(http.StatusCreated, att)
}
