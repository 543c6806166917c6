package repository

import (
	"errors"

	"customer-intake-portal/internal/database/models"
	apperrors "customer-intake-portal/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InquiryRepository persists intake form submissions
type InquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// Create inserts the inquiry and assigns its ID
func (r *InquiryRepository) Create(inquiry *models.Inquiry) error {
	return r.db.Create(inquiry).Error
}

// GetByID retrieves an inquiry by ID
func (r *InquiryRepository) GetByID(id uuid.UUID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.db.First(&inquiry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInquiryNotFound
		}
		return nil, err
	}
	return &inquiry, nil
}
