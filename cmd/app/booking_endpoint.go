package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"CareBowAPI/internal/authz"
	"CareBowAPI/internal/middleware"
	"CareBowAPI/internal/model"
	"CareBowAPI/internal/repository"
	"CareBowAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type createBookingRequest struct {
	PickupAddress  string    `json:"pickup_address"`
	DropoffAddress string    `json:"dropoff_address"`
	PickupTime     time.Time `json:"pickup_time"`
	Notes          *string   `json:"notes,omitempty"`
}

func registerBookingRoutes(g *echo.Group, bs *services.BookingService) {
	bookings := g.Group("/bookings")
	bookings.Use(middleware.RequireIdentity)

	// POST /care-link/bookings — family transport request.
	bookings.POST("", func(c echo.Context) error {
		ident := middleware.GetIdentity(c)
		if d := authz.Authorize(ident, []string{model.RoleFamily}, nil); !d.Allow {
			return denyJSON(c, d)
		}
		req := new(createBookingRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		b, err := bs.Create(c.Request().Context(), ident.ID, services.CreateBookingInput{
			PickupAddr:  req.PickupAddress,
			DropoffAddr: req.DropoffAddress,
			PickupTime:  req.PickupTime,
			Notes:       req.Notes,
		})
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "family profile not found"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, b)
	})

	// GET /care-link/bookings/me — own bookings.
	bookings.GET("/me", func(c echo.Context) error {
		ident := middleware.GetIdentity(c)
		if d := authz.Authorize(ident, []string{model.RoleFamily}, nil); !d.Allow {
			return denyJSON(c, d)
		}
		list, err := bs.ListForUser(c.Request().Context(), ident.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed"})
		}
		return c.JSON(http.StatusOK, list)
	})

	// GET /care-link/bookings/:id — owning family or admin.
	bookings.GET("/:id", func(c echo.Context) error {
		ident := middleware.GetIdentity(c)
		roles := []string{model.RoleFamily, model.RoleAdmin}
		// Role is checked before the fetch so a role rejection is the
		// same for every id.
		if d := authz.Authorize(ident, roles, nil); !d.Allow {
			return denyJSON(c, d)
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		b, err := bs.Get(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed"})
		}
		if d := authz.Authorize(ident, roles, &authz.Ownership{OwnerID: b.AuthID}); !d.Allow {
			// A booking someone else owns looks exactly like one that
			// does not exist, so ids cannot be probed.
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusOK, b)
	})

	// Admin overview of all bookings.
	admin := g.Group("/admin/bookings")
	admin.Use(middleware.RequireIdentity, middleware.AdminOnly)
	admin.GET("", func(c echo.Context) error {
		list, err := bs.ListAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed"})
		}
		return c.JSON(http.StatusOK, list)
	})
}
