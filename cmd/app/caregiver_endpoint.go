package main

import (
	"errors"
	"net/http"
	"strconv"

	"CareBowAPI/internal/authz"
	"CareBowAPI/internal/middleware"
	"CareBowAPI/internal/model"
	"CareBowAPI/internal/repository"
	"CareBowAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type reviewRequest struct {
	Status string `json:"status"` // verified or rejected
}

func registerCaregiverRoutes(g *echo.Group, cs *services.CaregiverService) {
	caregivers := g.Group("/caregivers")

	// Public search: only verified caregivers are listed.
	caregivers.GET("", func(c echo.Context) error {
		list, err := cs.Search(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed"})
		}
		return c.JSON(http.StatusOK, list)
	})

	// GET /care-link/caregivers/me
	me := caregivers.Group("/me")
	me.Use(middleware.RequireIdentity)
	me.GET("", func(c echo.Context) error {
		ident := middleware.GetIdentity(c)
		if d := authz.Authorize(ident, []string{model.RoleCaregiver}, nil); !d.Allow {
			return denyJSON(c, d)
		}
		cg, err := cs.GetByAuthID(c.Request().Context(), ident.ID)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "caregiver not found"})
		}
		return c.JSON(http.StatusOK, cg)
	})

	// Admin review surface.
	admin := g.Group("/admin/caregivers")
	admin.Use(middleware.RequireIdentity, middleware.AdminOnly)

	admin.GET("", func(c echo.Context) error {
		list, err := cs.ListAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed"})
		}
		return c.JSON(http.StatusOK, list)
	})

	// PATCH /care-link/admin/caregivers/:id/verification
	admin.PATCH("/:id/verification", func(c echo.Context) error {
		if d := authz.Authorize(middleware.GetIdentity(c), []string{model.RoleAdmin}, nil); !d.Allow {
			return denyJSON(c, d)
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		req := new(reviewRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		cg, err := cs.Review(c.Request().Context(), id, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{"error": "caregiver not found"})
			case errors.Is(err, repository.ErrAlreadyReviewed):
				return c.JSON(http.StatusConflict, echo.Map{"error": "caregiver already reviewed"})
			default:
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
		}
		return c.JSON(http.StatusOK, cg)
	})
}
