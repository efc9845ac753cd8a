package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler *AuthHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	auth := e.Group("/auth")

	auth.POST("/user/register", d.AuthHandler.RegisterUser)
	auth.POST("/user/login", d.AuthHandler.LoginUser)
	auth.POST("/staff/register", d.AuthHandler.RegisterStaff)
	auth.POST("/staff/login", d.AuthHandler.LoginStaff)

	auth.GET("/verify/:id", d.AuthHandler.Verify)
	auth.POST("/permission/check", d.AuthHandler.CheckPermission)

	auth.DELETE("/user/:id", d.AuthHandler.DeactivateUser)
	auth.DELETE("/staff/:id", d.AuthHandler.DeactivateStaff)
}
