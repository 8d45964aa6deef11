package model

import "time"

// Caregiver verification states. Pending is the sole initial state; a
// caregiver profile is created pending and moves exactly once to verified
// or rejected by an admin decision.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

func ValidDecision(status string) bool {
	return status == VerificationVerified || status == VerificationRejected
}

type Caregiver struct {
	CaregiverID        int64      `json:"caregiverid"`
	AuthID             int64      `json:"authid"`
	FullName           *string    `json:"fullname,omitempty"`
	Email              string     `json:"email"`
	Bio                *string    `json:"bio,omitempty"`
	Specialty          *string    `json:"specialty,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	VerificationStatus string     `json:"verification_status"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
}
