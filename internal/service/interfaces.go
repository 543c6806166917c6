package service

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// IntakeServiceInterface defines the interface for the intake workflow
type IntakeServiceInterface interface {
	Submit(ctx context.Context, req *SubmitInquiryRequest) (*SubmissionResult, error)
}

// Notifier sends a single email. Delivery is not confirmed to the caller.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// EmployeeDirectory resolves employee columns by id
type EmployeeDirectory interface {
	LookupFields(ctx context.Context, id uuid.UUID, fields []string) (map[string]interface{}, error)
}
