package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	EventHandler         *EventHTTP
	RewardHandler        *RewardHTTP
	RequestRewardHandler *RequestRewardHTTP
	AttendanceHandler    *AttendanceHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	events := e.Group("/events")
	events.GET("", d.EventHandler.ListEvents)
	// /search must register before /:id so it is not swallowed by the param route.
	events.GET("/search", d.EventHandler.SearchEvents)
	events.GET("/:id", d.EventHandler.GetEvent)
	events.POST("", d.EventHandler.CreateEvent)
	events.PUT("/:id", d.EventHandler.PatchEvent)
	events.PATCH("/:id", d.EventHandler.PatchEvent)
	events.DELETE("/:id", d.EventHandler.DeleteEvent)

	rewards := e.Group("/rewards")
	rewards.GET("", d.RewardHandler.ListRewards)
	rewards.GET("/:id", d.RewardHandler.GetReward)
	rewards.POST("", d.RewardHandler.CreateReward)
	rewards.PUT("/:id", d.RewardHandler.PatchReward)
	rewards.PATCH("/:id", d.RewardHandler.PatchReward)
	rewards.DELETE("/:id", d.RewardHandler.DeleteReward)

	requests := e.Group("/request-rewards")
	requests.GET("", d.RequestRewardHandler.List)
	requests.POST("", d.RequestRewardHandler.Claim)
	requests.PATCH("/process", d.RequestRewardHandler.Process)
	requests.GET("/:id", d.RequestRewardHandler.Get)
	requests.DELETE("/:id", d.RequestRewardHandler.Delete)

	e.POST("/attendance", d.AttendanceHandler.CheckIn)
}
