package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rewardlab/event-platform/pkg/logging"
	"github.com/rewardlab/event-platform/pkg/permissions"
	"github.com/rewardlab/event-platform/services/event/internal/repo"
	"github.com/rewardlab/event-platform/services/event/internal/service"
	"github.com/rewardlab/event-platform/services/event/internal/transport"
)

type RequestRewardHTTP struct {
	Svc *service.RequestRewardService
}

// Claim trusts the gateway's identity header for ownership: the record is
// always created for the calling principal, whatever the body says.
func (h *RequestRewardHTTP) Claim(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "request_reward.claim")

	var req transport.CreateRequestRewardRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("claim_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	userID := c.Request().Header.Get(permissions.HeaderUserID)
	result, err := h.Svc.Claim(ctx, userID, req.EventID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("claim_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("claim_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot process reward request")
	}

	l.Info("claim_recorded", "request_id", result.ID, "result", result.Result)
	return c.JSON(http.StatusCreated, result)
}

func (h *RequestRewardHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "request_reward.list")

	filter := repo.RequestRewardFilter{
		UserID: c.QueryParam("userId"),
		Result: c.QueryParam("result"),
	}
	if v := c.QueryParam("eventId"); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "eventId is not a uuid")
		}
		filter.EventID = parsed
	}
	if v := c.QueryParam("startDate"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		}
		filter.StartDate = parsed
	}
	if v := c.QueryParam("endDate"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		}
		filter.EndDate = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	items, err := h.Svc.List(ctx, filter)
	if err != nil {
		l.Error("list_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list reward requests")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *RequestRewardHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "request_reward.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	item, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_failed", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "reward request not found")
		}
		l.Error("get_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get reward request")
	}

	// USER principals may only see their own records.
	role := c.Request().Header.Get(permissions.HeaderUserRole)
	callerID := c.Request().Header.Get(permissions.HeaderUserID)
	if (role == "" || role == permissions.RoleUser) && callerID != "" && item.UserID != callerID {
		l.Warn("get_failed", "status", 404, "reason", "not owner")
		return echo.NewHTTPError(http.StatusNotFound, "reward request not found")
	}

	return c.JSON(http.StatusOK, item)
}

func (h *RequestRewardHTTP) Process(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "request_reward.process")

	var req transport.ProcessRequestRewardRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("process_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.Process(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("process_failed", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "reward request not found")
		case errors.Is(err, service.ErrAlreadyProcessed):
			l.Warn("process_failed", "status", 400, "reason", "already processed")
			return echo.NewHTTPError(http.StatusBadRequest, "reward request already processed")
		case errors.Is(err, service.ErrValidation):
			l.Warn("process_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("process_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot process reward request")
	}

	l.Info("process_success", "request_id", item.ID, "result", item.Result)
	return c.JSON(http.StatusOK, item)
}

func (h *RequestRewardHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "request_reward.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_failed", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "reward request not found")
		}
		l.Error("delete_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete reward request")
	}

	l.Info("delete_success", "request_id", id)
	return c.NoContent(http.StatusNoContent)
}
