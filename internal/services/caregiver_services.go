package services

import (
	"context"
	"errors"
	"log"

	"CareBowAPI/internal/model"
)

// CaregiverStore is the caregiver slice of the record store.
type CaregiverStore interface {
	GetByAuthID(ctx context.Context, authID int64) (*model.Caregiver, error)
	GetByID(ctx context.Context, caregiverID int64) (*model.Caregiver, error)
	Update(ctx context.Context, caregiverID int64, fullname, bio, specialty, phone *string) error
	ListVerified(ctx context.Context) ([]model.Caregiver, error)
	ListAll(ctx context.Context) ([]model.Caregiver, error)
	UpdateVerificationStatus(ctx context.Context, caregiverID int64, status string) error
}

type CaregiverService struct {
	Caregivers CaregiverStore
	Decisions  DecisionNotifier
}

func NewCaregiverService(store CaregiverStore, n DecisionNotifier) *CaregiverService {
	return &CaregiverService{Caregivers: store, Decisions: n}
}

// Search backs the public caregiver listing; only verified profiles.
func (s *CaregiverService) Search(ctx context.Context) ([]model.Caregiver, error) {
	return s.Caregivers.ListVerified(ctx)
}

func (s *CaregiverService) GetByAuthID(ctx context.Context, authID int64) (*model.Caregiver, error) {
	return s.Caregivers.GetByAuthID(ctx, authID)
}

func (s *CaregiverService) ListAll(ctx context.Context) ([]model.Caregiver, error) {
	return s.Caregivers.ListAll(ctx)
}

func (s *CaregiverService) UpdateSelf(ctx context.Context, caregiverID int64, fullname, bio, specialty, phone *string) error {
	return s.Caregivers.Update(ctx, caregiverID, fullname, bio, specialty, phone)
}

// Review applies an admin verification decision. The caregiver is read
// up front so that once the guarded status write lands, nothing can stop
// the decision email from being attempted; its failure is only logged,
// never propagated.
func (s *CaregiverService) Review(ctx context.Context, caregiverID int64, decision string) (*model.Caregiver, error) {
	if !model.ValidDecision(decision) {
		return nil, errors.New("decision must be verified or rejected")
	}
	cg, err := s.Caregivers.GetByID(ctx, caregiverID)
	if err != nil {
		return nil, err
	}
	if err := s.Caregivers.UpdateVerificationStatus(ctx, caregiverID, decision); err != nil {
		return nil, err
	}
	cg.VerificationStatus = decision
	if s.Decisions != nil {
		if err := s.Decisions.SendVerificationDecision(ctx, cg.Email, decision); err != nil {
			log.Printf("caregiver %d: decision notification failed: %v", caregiverID, err)
		}
	}
	return cg, nil
}
