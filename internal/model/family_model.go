package model

import "time"

type Family struct {
	FamilyID         int64      `json:"familyid"`
	AuthID           int64      `json:"authid"`
	FullName         *string    `json:"fullname,omitempty"`
	Email            string     `json:"email"`
	Address          *string    `json:"address,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	EmergencyContact *string    `json:"emergency_contact,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}
