package main

import (
	"net/http"

	"CareBowAPI/internal/authz"
	"CareBowAPI/internal/middleware"
	"CareBowAPI/internal/model"
	"CareBowAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerFamilyRoutes(g *echo.Group, fs *services.FamilyService) {
	families := g.Group("/families")
	families.Use(middleware.RequireIdentity)

	// GET /care-link/families/me
	families.GET("/me", func(c echo.Context) error {
		ident := middleware.GetIdentity(c)
		if d := authz.Authorize(ident, []string{model.RoleFamily}, nil); !d.Allow {
			return denyJSON(c, d)
		}
		fam, err := fs.GetByAuthID(c.Request().Context(), ident.ID)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "family not found"})
		}
		return c.JSON(http.StatusOK, fam)
	})

	// Admin list of family profiles.
	admin := g.Group("/admin/families")
	admin.Use(middleware.RequireIdentity, middleware.AdminOnly)
	admin.GET("", func(c echo.Context) error {
		list, err := fs.ListAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed"})
		}
		return c.JSON(http.StatusOK, list)
	})
}
