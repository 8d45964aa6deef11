package routes

import (
	"net/http"

	"CareBowAPI/internal/middleware"

	"github.com/labstack/echo/v4"
)

// PageGuard applies the edge decision to page routes: public pages pass
// through, everything else needs a resolved session or gets redirected to
// the login page with the original path in returnUrl. Must run after
// middleware.WithIdentity.
func PageGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := Decide(c.Request().URL.Path, middleware.GetIdentity(c))
			if !d.Allow {
				return c.Redirect(http.StatusFound, d.RedirectTo)
			}
			return next(c)
		}
	}
}
