package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"CareBowAPI/internal/model"
	"CareBowAPI/internal/repository"
)

type fakeFamilyFinder struct {
	families map[int64]*model.Family
}

func (f *fakeFamilyFinder) GetByAuthID(_ context.Context, authID int64) (*model.Family, error) {
	fam, ok := f.families[authID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return fam, nil
}

type fakeBookingStore struct {
	created    []model.Booking
	nextID     int64
	failCreate bool
}

func (f *fakeBookingStore) Create(_ context.Context, b *model.Booking) (int64, error) {
	if f.failCreate {
		return 0, errors.New("store down")
	}
	f.nextID++
	cp := *b
	cp.BookingID = f.nextID
	f.created = append(f.created, cp)
	return f.nextID, nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	for i := range f.created {
		if f.created[i].BookingID == id {
			return &f.created[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookingStore) ListByAuthID(_ context.Context, authID int64) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range f.created {
		if b.AuthID == authID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) ListAll(_ context.Context) ([]model.Booking, error) {
	return f.created, nil
}

type fakeOps struct {
	calls int
	fail  bool
}

func (f *fakeOps) BookingRequested(_ context.Context, _ *model.Booking) error {
	f.calls++
	if f.fail {
		return errors.New("amqp down")
	}
	return nil
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		PickupAddr:  "12 Oak St",
		DropoffAddr: "County Clinic",
		PickupTime:  time.Now().Add(24 * time.Hour),
	}
}

func TestCreateBooking(t *testing.T) {
	families := &fakeFamilyFinder{families: map[int64]*model.Family{
		10: {FamilyID: 3, AuthID: 10, Email: "fam@example.com"},
	}}
	store := &fakeBookingStore{}
	ops := &fakeOps{}
	svc := NewBookingService(store, families, ops)

	b, err := svc.Create(context.Background(), 10, validInput())
	if err != nil {
		t.Fatal(err)
	}
	if b.Status != model.BookingRequested {
		t.Fatalf("status = %q, want %q", b.Status, model.BookingRequested)
	}
	// dual linkage: both the family profile id and the raw user id
	if b.FamilyID != 3 || b.AuthID != 10 {
		t.Fatalf("linkage = (family %d, auth %d), want (3, 10)", b.FamilyID, b.AuthID)
	}
	if b.Reference == "" {
		t.Fatal("reference not assigned")
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d rows, want 1", len(store.created))
	}
	if ops.calls != 1 {
		t.Fatalf("ops notified %d times, want 1", ops.calls)
	}
}

// A family identity without a family profile gets not-found and nothing is
// written.
func TestCreateBookingWithoutProfile(t *testing.T) {
	store := &fakeBookingStore{}
	svc := NewBookingService(store, &fakeFamilyFinder{families: map[int64]*model.Family{}}, &fakeOps{})

	_, err := svc.Create(context.Background(), 10, validInput())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(store.created) != 0 {
		t.Fatalf("booking row created despite missing profile")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	families := &fakeFamilyFinder{families: map[int64]*model.Family{
		10: {FamilyID: 3, AuthID: 10},
	}}
	svc := NewBookingService(&fakeBookingStore{}, families, &fakeOps{})

	tests := []struct {
		name string
		in   CreateBookingInput
	}{
		{"missing pickup", CreateBookingInput{DropoffAddr: "x", PickupTime: time.Now()}},
		{"missing dropoff", CreateBookingInput{PickupAddr: "x", PickupTime: time.Now()}},
		{"missing time", CreateBookingInput{PickupAddr: "x", DropoffAddr: "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), 10, tt.in); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// The ops signal is fire-and-forget: its failure never rolls back or fails
// the booking.
func TestCreateBookingOpsFailureIgnored(t *testing.T) {
	families := &fakeFamilyFinder{families: map[int64]*model.Family{
		10: {FamilyID: 3, AuthID: 10},
	}}
	store := &fakeBookingStore{}
	ops := &fakeOps{fail: true}
	svc := NewBookingService(store, families, ops)

	b, err := svc.Create(context.Background(), 10, validInput())
	if err != nil {
		t.Fatalf("ops failure surfaced: %v", err)
	}
	if b == nil || len(store.created) != 1 {
		t.Fatal("booking not created")
	}
	if ops.calls != 1 {
		t.Fatalf("ops notified %d times, want 1", ops.calls)
	}
}

func TestCreateBookingStoreFailure(t *testing.T) {
	families := &fakeFamilyFinder{families: map[int64]*model.Family{
		10: {FamilyID: 3, AuthID: 10},
	}}
	ops := &fakeOps{}
	svc := NewBookingService(&fakeBookingStore{failCreate: true}, families, ops)

	if _, err := svc.Create(context.Background(), 10, validInput()); err == nil {
		t.Fatal("expected store error")
	}
	if ops.calls != 0 {
		t.Fatal("ops notified for a failed creation")
	}
}
