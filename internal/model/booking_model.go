package model

import "time"

// Booking states. This service only ever writes "requested"; downstream
// fulfillment moves the booking through the later states.
const (
	BookingRequested = "requested"
	BookingScheduled = "scheduled"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking links to both the family profile and the raw user id: admin and
// ops queries join on familyid, session-scoped queries on authid.
type Booking struct {
	BookingID   int64      `json:"bookingid"`
	Reference   string     `json:"reference"`
	FamilyID    int64      `json:"familyid"`
	AuthID      int64      `json:"authid"`
	PickupAddr  string     `json:"pickup_address"`
	DropoffAddr string     `json:"dropoff_address"`
	PickupTime  time.Time  `json:"pickup_time"`
	Notes       *string    `json:"notes,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}
