package repository

import (
	"customer-intake-portal/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// CustomerRepositoryInterface defines the interface for customer directory operations
type CustomerRepositoryInterface interface {
	Create(customer *models.Customer) error
	GetByID(id uuid.UUID) (*models.Customer, error)
	FindIDsByEmail(email string) ([]uuid.UUID, error)
	LookupFields(id uuid.UUID, fields []string) (map[string]interface{}, error)
	Update(customer *models.Customer) error
}

// EmployeeRepositoryInterface defines the interface for employee directory operations
type EmployeeRepositoryInterface interface {
	Create(employee *models.Employee) error
	GetByID(id uuid.UUID) (*models.Employee, error)
	GetByUserID(userID string) (*models.Employee, error)
	LookupFields(id uuid.UUID, fields []string) (map[string]interface{}, error)
	Update(employee *models.Employee) error
}

// InquiryRepositoryInterface defines the interface for the inquiry submission store
type InquiryRepositoryInterface interface {
	Create(inquiry *models.Inquiry) error
	GetByID(id uuid.UUID) (*models.Inquiry, error)
}
