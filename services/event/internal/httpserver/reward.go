package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rewardlab/event-platform/pkg/logging"
	"github.com/rewardlab/event-platform/services/event/internal/service"
	"github.com/rewardlab/event-platform/services/event/internal/transport"
)

type RewardHTTP struct {
	Svc *service.RewardService
}

func (h *RewardHTTP) GetReward(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reward.get_reward")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_reward_failed", "status", 400, "reason", "id is not a uuid")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	reward, err := h.Svc.GetReward(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_reward_failed", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "reward not found")
		}
		l.Error("get_reward_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get reward")
	}
	return c.JSON(http.StatusOK, reward)
}

func (h *RewardHTTP) ListRewards(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reward.list_rewards")

	eventID := uuid.Nil
	if v := c.QueryParam("eventId"); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "eventId is not a uuid")
		}
		eventID = parsed
	}

	rewards, err := h.Svc.ListRewards(ctx, eventID)
	if err != nil {
		l.Error("list_rewards_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list rewards")
	}
	return c.JSON(http.StatusOK, rewards)
}

func (h *RewardHTTP) CreateReward(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reward.create_reward")

	var req transport.CreateRewardRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_reward_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	reward, err := h.Svc.CreateReward(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_reward_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("create_reward_failed", "status", 404, "reason", "event not found")
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		l.Error("create_reward_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create reward")
	}

	l.Info("create_reward_success", "reward_id", reward.ID)
	return c.JSON(http.StatusCreated, reward)
}

func (h *RewardHTTP) PatchReward(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reward.patch_reward")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("patch_reward_failed", "status", 400, "reason", "id is not a uuid")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.PatchRewardRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_reward_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	reward, err := h.Svc.PatchReward(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("patch_reward_failed", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "reward not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("patch_reward_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("patch_reward_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update reward")
	}

	l.Info("patch_reward_success", "reward_id", reward.ID)
	return c.JSON(http.StatusOK, reward)
}

func (h *RewardHTTP) DeleteReward(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reward.delete_reward")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_reward_failed", "status", 400, "reason", "id is not a uuid")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeleteReward(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_reward_failed", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "reward not found")
		}
		l.Error("delete_reward_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete reward")
	}

	l.Info("delete_reward_success", "reward_id", id)
	return c.NoContent(http.StatusNoContent)
}
