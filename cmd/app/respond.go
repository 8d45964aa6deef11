package main

import (
	"net/http"

	"CareBowAPI/internal/authz"

	"github.com/labstack/echo/v4"
)

// denyJSON maps a gate denial onto an HTTP rejection. Messages stay
// generic so callers cannot probe which resources exist.
func denyJSON(c echo.Context, d authz.Decision) error {
	switch d.Reason {
	case authz.ReasonUnauthenticated:
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
}
