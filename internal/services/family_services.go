package services

import (
	"context"

	"CareBowAPI/internal/model"
)

// FamilyStore is the family slice of the record store.
type FamilyStore interface {
	GetByAuthID(ctx context.Context, authID int64) (*model.Family, error)
	Update(ctx context.Context, familyID int64, fullname, address, phone, emergencyContact *string) error
	ListAll(ctx context.Context) ([]model.Family, error)
}

type FamilyService struct {
	Families FamilyStore
}

func NewFamilyService(store FamilyStore) *FamilyService {
	return &FamilyService{Families: store}
}

func (s *FamilyService) GetByAuthID(ctx context.Context, authID int64) (*model.Family, error) {
	return s.Families.GetByAuthID(ctx, authID)
}

func (s *FamilyService) UpdateSelf(ctx context.Context, familyID int64, fullname, address, phone, emergencyContact *string) error {
	return s.Families.Update(ctx, familyID, fullname, address, phone, emergencyContact)
}

func (s *FamilyService) ListAll(ctx context.Context) ([]model.Family, error) {
	return s.Families.ListAll(ctx)
}
