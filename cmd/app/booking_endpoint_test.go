package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"CareBowAPI/internal/model"
	"CareBowAPI/internal/repository"
	"CareBowAPI/internal/services"
)

type stubBookingStore struct {
	bookings map[int64]*model.Booking
}

func (s *stubBookingStore) Create(_ context.Context, b *model.Booking) (int64, error) {
	return 1, nil
}

func (s *stubBookingStore) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (s *stubBookingStore) ListByAuthID(context.Context, int64) ([]model.Booking, error) {
	return nil, nil
}
func (s *stubBookingStore) ListAll(context.Context) ([]model.Booking, error) { return nil, nil }

type stubFamilyFinder struct{}

func (stubFamilyFinder) GetByAuthID(context.Context, int64) (*model.Family, error) {
	return nil, repository.ErrNotFound
}

// A booking owned by someone else must be indistinguishable from one that
// does not exist.
func TestGetBookingHidesForeignBookings(t *testing.T) {
	owner := &model.Auth{AuthID: 10, Email: "owner@example.com", Role: model.RoleFamily}
	other := &model.Auth{AuthID: 11, Email: "other@example.com", Role: model.RoleFamily}
	caregiver := &model.Auth{AuthID: 20, Email: "cg@example.com", Role: model.RoleCaregiver}
	admin := &model.Auth{AuthID: 1, Email: "admin@example.com", Role: model.RoleAdmin}

	sessions := &stubSessionStore{
		users:    map[int64]*model.Auth{10: owner, 11: other, 20: caregiver, 1: admin},
		profiles: map[int64]bool{10: true, 11: true, 20: true},
	}
	store := &stubBookingStore{bookings: map[int64]*model.Booking{
		1: {BookingID: 1, FamilyID: 3, AuthID: 10, Status: model.BookingRequested},
	}}

	e, api := newAPI(sessions)
	registerBookingRoutes(api, services.NewBookingService(store, stubFamilyFinder{}, services.LogNotifier{}))

	get := func(target, token string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, bearerRequest(http.MethodGet, target, nil, token))
		return rec
	}

	if rec := get("/care-link/bookings/1", tokenFor(t, owner)); rec.Code != http.StatusOK {
		t.Fatalf("owner: status = %d (body %s)", rec.Code, rec.Body.String())
	}
	if rec := get("/care-link/bookings/1", tokenFor(t, admin)); rec.Code != http.StatusOK {
		t.Fatalf("admin: status = %d", rec.Code)
	}

	// a non-owning family gets the exact response an absent id produces
	foreign := get("/care-link/bookings/1", tokenFor(t, other))
	absent := get("/care-link/bookings/999", tokenFor(t, other))
	if foreign.Code != http.StatusNotFound || absent.Code != http.StatusNotFound {
		t.Fatalf("codes = %d and %d, want 404 for both", foreign.Code, absent.Code)
	}
	if foreign.Body.String() != absent.Body.String() {
		t.Fatalf("bodies differ: %q vs %q", foreign.Body.String(), absent.Body.String())
	}

	// caregivers are rejected by role, identically for every id
	cgExisting := get("/care-link/bookings/1", tokenFor(t, caregiver))
	cgAbsent := get("/care-link/bookings/999", tokenFor(t, caregiver))
	if cgExisting.Code != http.StatusForbidden || cgExisting.Code != cgAbsent.Code {
		t.Fatalf("caregiver codes = %d and %d, want equal 403", cgExisting.Code, cgAbsent.Code)
	}

	if rec := get("/care-link/bookings/1", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d, want 401", rec.Code)
	}
}
