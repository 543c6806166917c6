package repository

import (
	"errors"

	"customer-intake-portal/internal/database/models"
	apperrors "customer-intake-portal/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var customerLookupColumns = columnSet("id", "name", "email", "sales_rep_id")

// CustomerRepository handles database operations for customers
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer
func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindIDsByEmail returns the IDs of all customers whose email equals email exactly.
// No ORDER BY is applied: callers that take the first ID get the store's default ordering.
func (r *CustomerRepository) FindIDsByEmail(email string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.Model(&models.Customer{}).
		Where("email = ?", email).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// LookupFields returns the requested columns of one customer
func (r *CustomerRepository) LookupFields(id uuid.UUID, fields []string) (map[string]interface{}, error) {
	return lookupFields(r.db, &models.Customer{}, customerLookupColumns, id, fields, apperrors.ErrCustomerNotFound)
}

// Update updates a customer
func (r *CustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}
