package main

import (
	"net/http"
	"strconv"

	"CareBowAPI/internal/authz"
	"CareBowAPI/internal/middleware"
	"CareBowAPI/internal/model"
	"CareBowAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullname"`
	Role     string `json:"role"` // family or caregiver
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerPublic handles unauthenticated registration for families and
// caregivers; the matching profile row is created alongside the account.
func registerPublic(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		id, err := authSvc.Register(
			c.Request().Context(),
			req.Email,
			req.Password,
			req.FullName,
			req.Role,
		)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"authid":  id,
			"message": "registration successful",
		})
	}
}

// adminRegister lets an admin create further admin accounts.
func adminRegister(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if d := authz.Authorize(middleware.GetIdentity(c), []string{model.RoleAdmin}, nil); !d.Allow {
			return denyJSON(c, d)
		}
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		id, err := authSvc.RegisterAdmin(c.Request().Context(), req.Email, req.Password, req.FullName)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"authid": id})
	}
}

func loginHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		user, err := authSvc.Login(
			c.Request().Context(),
			req.Email,
			req.Password,
		)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "invalid credentials",
			})
		}

		token, err := middleware.GenerateToken(
			user.AuthID,
			user.Email,
			user.Role,
			24,
		)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "could not create session",
			})
		}
		middleware.SetSessionCookie(c, token, 24)

		return c.JSON(http.StatusOK, echo.Map{
			"token": token,
			"user": echo.Map{
				"authid":   user.AuthID,
				"email":    user.Email,
				"fullname": user.FullName,
				"role":     user.Role,
			},
		})
	}
}

// meHandler returns the resolved identity, profile flag included.
func meHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		ident := middleware.GetIdentity(c)
		if ident == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"authid":      ident.ID,
			"email":       ident.Email,
			"fullname":    ident.DisplayName,
			"role":        ident.Role,
			"has_profile": ident.HasProfile,
		})
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService) {
	auth := g.Group("/auth")

	// public
	auth.POST("/register", registerPublic(authSvc))
	auth.POST("/login", loginHandler(authSvc))

	// authenticated
	protected := auth.Group("")
	protected.Use(middleware.RequireIdentity)
	protected.GET("/me", meHandler())

	// admin-only
	admin := auth.Group("/admin")
	admin.Use(
		middleware.RequireIdentity,
		middleware.AdminOnly,
	)
	admin.POST("/register", adminRegister(authSvc))
	admin.GET("/users", listAccounts(authSvc))
	admin.GET("/users/:id", getAccount(authSvc))
	admin.POST("/users/:id/ban", banAccount(authSvc))
	admin.POST("/users/:id/unban", unbanAccount(authSvc))
}

func listAccounts(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		accounts, err := authSvc.ListAccounts(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed"})
		}
		return c.JSON(http.StatusOK, accounts)
	}
}

func getAccount(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		account, err := authSvc.GetAccount(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusOK, account)
	}
}

func banAccount(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		if err := authSvc.BanUser(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "user banned"})
	}
}

func unbanAccount(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		if err := authSvc.UnBanUser(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "user ban was lifted"})
	}
}
