package main

import (
	"net/http"

	"CareBowAPI/internal/routes"

	"github.com/labstack/echo/v4"
)

// registerPageRoutes wires the browser-facing paths behind the edge gate.
// Handlers here are placeholders: page rendering lives in the frontend,
// but the redirect-to-login behavior belongs to this service.
func registerPageRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	pages := e.Group("", guard, routes.PageGuard())

	page := func(name string) echo.HandlerFunc {
		return func(c echo.Context) error {
			return c.JSON(http.StatusOK, echo.Map{"page": name})
		}
	}

	pages.GET("/", page("home"))
	pages.GET("/login", page("login"))
	pages.GET("/register", page("register"))
	pages.GET("/services", page("services"))
	pages.GET("/about", page("about"))
	pages.GET("/legal/:doc", page("legal"))
	pages.GET("/dashboard", page("dashboard"))
	pages.GET("/profile", page("profile"))
	pages.GET("/bookings", page("bookings"))
	pages.GET("/admin/dashboard", page("admin-dashboard"))
}
