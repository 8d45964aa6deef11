package services

import (
	"context"
	"errors"
	"log"
	"time"

	"CareBowAPI/internal/model"

	"github.com/google/uuid"
)

// FamilyFinder resolves the family profile owning a new booking.
type FamilyFinder interface {
	GetByAuthID(ctx context.Context, authID int64) (*model.Family, error)
}

// BookingStore is the booking slice of the record store.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) (int64, error)
	GetByID(ctx context.Context, bookingID int64) (*model.Booking, error)
	ListByAuthID(ctx context.Context, authID int64) ([]model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
}

type BookingService struct {
	Bookings BookingStore
	Families FamilyFinder
	Ops      OpsNotifier
}

func NewBookingService(bs BookingStore, ff FamilyFinder, ops OpsNotifier) *BookingService {
	return &BookingService{Bookings: bs, Families: ff, Ops: ops}
}

type CreateBookingInput struct {
	PickupAddr  string
	DropoffAddr string
	PickupTime  time.Time
	Notes       *string
}

// Create makes a transport booking for the calling family. The family
// profile must already exist; otherwise nothing is written and the store's
// not-found error comes back. The booking records both the family profile
// id and the raw user id. The ops signal is dispatched after the write and
// never fails the creation.
func (s *BookingService) Create(ctx context.Context, authID int64, in CreateBookingInput) (*model.Booking, error) {
	fam, err := s.Families.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}
	if in.PickupAddr == "" || in.DropoffAddr == "" {
		return nil, errors.New("pickup and dropoff addresses are required")
	}
	if in.PickupTime.IsZero() {
		return nil, errors.New("pickup time is required")
	}

	b := &model.Booking{
		Reference:   uuid.NewString(),
		FamilyID:    fam.FamilyID,
		AuthID:      authID,
		PickupAddr:  in.PickupAddr,
		DropoffAddr: in.DropoffAddr,
		PickupTime:  in.PickupTime,
		Notes:       in.Notes,
		Status:      model.BookingRequested,
	}
	id, err := s.Bookings.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	b.BookingID = id

	if s.Ops != nil {
		if err := s.Ops.BookingRequested(ctx, b); err != nil {
			log.Printf("booking %s: ops notification failed: %v", b.Reference, err)
		}
	}
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, bookingID int64) (*model.Booking, error) {
	return s.Bookings.GetByID(ctx, bookingID)
}

func (s *BookingService) ListForUser(ctx context.Context, authID int64) ([]model.Booking, error) {
	return s.Bookings.ListByAuthID(ctx, authID)
}

func (s *BookingService) ListAll(ctx context.Context) ([]model.Booking, error) {
	return s.Bookings.ListAll(ctx)
}
