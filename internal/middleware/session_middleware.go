package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"CareBowAPI/internal/authz"
	"CareBowAPI/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookie carries the signed session token for browser callers.
// API clients may send the same token as a bearer header instead.
const SessionCookie = "carebow_session"

const identityKey = "identity"

// Claims defines the session token payload.
type Claims struct {
	AuthID int64  `json:"authid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var jwtSecret = []byte("dev-secret-please-change")

// SetSecret installs the signing secret; call once at startup.
func SetSecret(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

// GenerateToken creates a signed session token for the given user details
// and expiry (in hours).
func GenerateToken(authid int64, email, role string, hours int) (string, error) {
	claims := &Claims{
		AuthID: authid,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(hours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "carebow-api",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(jwtSecret)
}

// SetSessionCookie attaches the session token to the response.
func SetSessionCookie(c echo.Context, token string, hours int) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(hours) * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// tokenFromRequest prefers the session cookie and falls back to a bearer
// Authorization header. Empty string when neither is present.
func tokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	auth := c.Request().Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.Fields(auth)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

func parseClaims(token string) *Claims {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// SessionStore is the slice of the record store the resolver needs.
// GetUserByID returns (nil, nil) when no such user exists so that a
// storage failure stays distinguishable for logging.
type SessionStore interface {
	GetUserByID(ctx context.Context, authID int64) (*model.Auth, error)
	HasProfile(ctx context.Context, authID int64, role string) (bool, error)
}

// Resolver turns a request's session credential into an Identity.
type Resolver struct {
	Store SessionStore
}

func NewResolver(store SessionStore) *Resolver {
	return &Resolver{Store: store}
}

// Resolve returns the caller's identity, or nil when the credential is
// absent, malformed, expired, or no longer matches a live user. Storage
// failures resolve to nil as well (fail closed) and are only logged; the
// caller cannot tell them apart from "not logged in".
func (r *Resolver) Resolve(c echo.Context) *authz.Identity {
	token := tokenFromRequest(c)
	if token == "" {
		return nil
	}
	claims := parseClaims(token)
	if claims == nil {
		return nil
	}

	ctx := c.Request().Context()
	u, err := r.Store.GetUserByID(ctx, claims.AuthID)
	if err != nil {
		log.Printf("session: user lookup failed for authid=%d: %v", claims.AuthID, err)
		return nil
	}
	if u == nil || u.DeletedAt != nil {
		return nil
	}

	// The profile flag is computed fresh on every resolution; admins have
	// no role-specific profile row.
	hasProfile := true
	if u.Role != model.RoleAdmin {
		hasProfile, err = r.Store.HasProfile(ctx, u.AuthID, u.Role)
		if err != nil {
			log.Printf("session: profile lookup failed for authid=%d: %v", u.AuthID, err)
			return nil
		}
	}

	return &authz.Identity{
		ID:          u.AuthID,
		Email:       u.Email,
		DisplayName: u.FullName,
		Role:        u.Role,
		HasProfile:  hasProfile,
	}
}

// WithIdentity resolves the session once per request and stashes the
// result (possibly nil) in the echo context for GetIdentity.
func WithIdentity(r *Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ident := r.Resolve(c); ident != nil {
				c.Set(identityKey, ident)
			}
			return next(c)
		}
	}
}

// GetIdentity returns the identity resolved by WithIdentity, or nil.
func GetIdentity(c echo.Context) *authz.Identity {
	v := c.Get(identityKey)
	if v == nil {
		return nil
	}
	if ident, ok := v.(*authz.Identity); ok {
		return ident
	}
	return nil
}

// RequireIdentity rejects unauthenticated API calls.
func RequireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if GetIdentity(c) == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		return next(c)
	}
}

// RequireRoles rejects callers whose role is outside the allowed set.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := GetIdentity(c)
			if ident == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			}
			if _, ok := allowed[ident.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// AdminOnly requires role == admin.
var AdminOnly = RequireRoles(model.RoleAdmin)
