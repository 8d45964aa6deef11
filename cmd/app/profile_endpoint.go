package main

import (
	"net/http"

	"CareBowAPI/internal/authz"
	"CareBowAPI/internal/middleware"
	"CareBowAPI/internal/model"
	"CareBowAPI/internal/services"

	"github.com/labstack/echo/v4"
)

// updateProfileRequest is the union of the per-role editable fields; the
// handler picks the subset matching the caller's role.
type updateProfileRequest struct {
	FullName         *string `json:"fullname,omitempty"`
	Address          *string `json:"address,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
	Bio              *string `json:"bio,omitempty"`
	Specialty        *string `json:"specialty,omitempty"`
}

// registerProfileRoutes wires the self-service profile update: any
// authenticated role may call it, and the handler branches by role.
func registerProfileRoutes(g *echo.Group, fs *services.FamilyService, cs *services.CaregiverService, as *services.AuthService) {
	profile := g.Group("/profile")
	profile.Use(middleware.RequireIdentity)

	profile.PUT("/me", func(c echo.Context) error {
		ident := middleware.GetIdentity(c)
		allRoles := []string{model.RoleFamily, model.RoleCaregiver, model.RoleAdmin}
		if d := authz.Authorize(ident, allRoles, nil); !d.Allow {
			return denyJSON(c, d)
		}

		req := new(updateProfileRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		ctx := c.Request().Context()
		switch ident.Role {
		case model.RoleFamily:
			if req.FullName == nil && req.Address == nil && req.Phone == nil && req.EmergencyContact == nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
			}
			fam, err := fs.GetByAuthID(ctx, ident.ID)
			if err != nil {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "family not found"})
			}
			if err := fs.UpdateSelf(ctx, fam.FamilyID, req.FullName, req.Address, req.Phone, req.EmergencyContact); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "update failed"})
			}

		case model.RoleCaregiver:
			if req.FullName == nil && req.Bio == nil && req.Specialty == nil && req.Phone == nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
			}
			cg, err := cs.GetByAuthID(ctx, ident.ID)
			if err != nil {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "caregiver not found"})
			}
			if err := cs.UpdateSelf(ctx, cg.CaregiverID, req.FullName, req.Bio, req.Specialty, req.Phone); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "update failed"})
			}

		case model.RoleAdmin:
			if req.FullName == nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
			}
			if err := as.UpdateDisplayName(ctx, ident.ID, *req.FullName); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "update failed"})
			}
		}

		return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
	})
}
