package repository

import (
	"errors"

	"customer-intake-portal/internal/database/models"
	apperrors "customer-intake-portal/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var employeeLookupColumns = columnSet("id", "name", "email", "user_id")

// EmployeeRepository handles database operations for employees
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create creates a new employee
func (r *EmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// GetByUserID retrieves an employee by their corporate directory account
func (r *EmployeeRepository) GetByUserID(userID string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// LookupFields returns the requested columns of one employee
func (r *EmployeeRepository) LookupFields(id uuid.UUID, fields []string) (map[string]interface{}, error) {
	return lookupFields(r.db, &models.Employee{}, employeeLookupColumns, id, fields, apperrors.ErrEmployeeNotFound)
}

// Update updates an employee
func (r *EmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}
