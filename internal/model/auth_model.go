package model

import "time"

// Roles stored on userauth rows.
const (
	RoleFamily    = "family"
	RoleCaregiver = "caregiver"
	RoleAdmin     = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleFamily, RoleCaregiver, RoleAdmin:
		return true
	}
	return false
}

type Auth struct {
	AuthID       int64      `json:"authid"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never JSON-encode
	FullName     string     `json:"fullname"`
	Role         string     `json:"role"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`

	EmailVerified bool `json:"email_verified"`
}
