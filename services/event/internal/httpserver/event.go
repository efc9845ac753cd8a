package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rewardlab/event-platform/pkg/logging"
	"github.com/rewardlab/event-platform/services/event/internal/search"
	"github.com/rewardlab/event-platform/services/event/internal/service"
	"github.com/rewardlab/event-platform/services/event/internal/transport"
)

type EventHTTP struct {
	Svc *service.EventService
}

func (h *EventHTTP) GetEvent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.get_event")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_event_failed", "status", 400, "reason", "id is not a uuid")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	event, err := h.Svc.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_event_failed", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		l.Error("get_event_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get event")
	}
	return c.JSON(http.StatusOK, event)
}

func (h *EventHTTP) ListEvents(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.list_events")

	events, err := h.Svc.ListEvents(ctx, c.QueryParam("status"))
	if err != nil {
		l.Error("list_events_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list events")
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHTTP) SearchEvents(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.search_events")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	events, err := h.Svc.SearchEvents(ctx, q)
	if err != nil {
		if errors.Is(err, search.ErrUnavailable) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
		}
		l.Error("search_events_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHTTP) CreateEvent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.create_event")

	var req transport.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_event_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	event, err := h.Svc.CreateEvent(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_event_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("create_event_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create event")
	}

	l.Info("create_event_success", "event_id", event.ID)
	return c.JSON(http.StatusCreated, event)
}

func (h *EventHTTP) PatchEvent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.patch_event")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("patch_event_failed", "status", 400, "reason", "id is not a uuid")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.PatchEventRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_event_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	event, err := h.Svc.PatchEvent(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("patch_event_failed", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("patch_event_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("patch_event_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update event")
	}

	l.Info("patch_event_success", "event_id", event.ID)
	return c.JSON(http.StatusOK, event)
}

func (h *EventHTTP) DeleteEvent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.delete_event")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_event_failed", "status", 400, "reason", "id is not a uuid")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_event_failed", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		l.Error("delete_event_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete event")
	}

	l.Info("delete_event_success", "event_id", id)
	return c.NoContent(http.StatusNoContent)
}
