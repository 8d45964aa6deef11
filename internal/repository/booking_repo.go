package repository

import (
	"context"
	"errors"
	"time"

	"CareBowAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	DB *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{DB: db}
}

const bookingCols = `bookingid, reference, familyid, authid, pickup_address, dropoff_address, pickup_time, notes, status, created_at`

// Create inserts a transport booking as one atomic write, recording both
// the owning family profile id and the raw user id.
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) (int64, error) {
	var id int64
	query := `
		INSERT INTO bookings (reference, familyid, authid, pickup_address, dropoff_address, pickup_time, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING bookingid
	`
	if err := r.DB.QueryRow(ctx, query, b.Reference, b.FamilyID, b.AuthID, b.PickupAddr, b.DropoffAddr, b.PickupTime, b.Notes, b.Status, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID int64) (*model.Booking, error) {
	var b model.Booking
	query := `SELECT ` + bookingCols + ` FROM bookings WHERE bookingid=$1`
	if err := r.DB.QueryRow(ctx, query, bookingID).Scan(&b.BookingID, &b.Reference, &b.FamilyID, &b.AuthID, &b.PickupAddr, &b.DropoffAddr, &b.PickupTime, &b.Notes, &b.Status, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByAuthID returns the bookings owned by the given user, newest first.
func (r *BookingRepository) ListByAuthID(ctx context.Context, authID int64) ([]model.Booking, error) {
	query := `SELECT ` + bookingCols + ` FROM bookings WHERE authid=$1 ORDER BY bookingid DESC`
	return r.list(ctx, query, authID)
}

// ListAll returns every booking (admin use).
func (r *BookingRepository) ListAll(ctx context.Context) ([]model.Booking, error) {
	query := `SELECT ` + bookingCols + ` FROM bookings ORDER BY bookingid DESC`
	return r.list(ctx, query)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.BookingID, &b.Reference, &b.FamilyID, &b.AuthID, &b.PickupAddr, &b.DropoffAddr, &b.PickupTime, &b.Notes, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
