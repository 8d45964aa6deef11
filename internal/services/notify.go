package services

import (
	"context"
	"log"

	"CareBowAPI/internal/model"
)

// DecisionNotifier tells a caregiver about a verification decision.
// Fire-and-forget: callers log failures and never roll back on them.
type DecisionNotifier interface {
	SendVerificationDecision(ctx context.Context, toEmail, status string) error
}

// OpsNotifier signals the transport-operations collaborator about new
// booking requests. Same fire-and-forget contract.
type OpsNotifier interface {
	BookingRequested(ctx context.Context, b *model.Booking) error
}

// LogNotifier is the fallback when no external dispatcher is configured.
type LogNotifier struct{}

func (LogNotifier) SendVerificationDecision(_ context.Context, toEmail, status string) error {
	log.Printf("[notify] verification decision %q for %s", status, toEmail)
	return nil
}

func (LogNotifier) BookingRequested(_ context.Context, b *model.Booking) error {
	log.Printf("[notify] booking %s requested by family %d", b.Reference, b.FamilyID)
	return nil
}
