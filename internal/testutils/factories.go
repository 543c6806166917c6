package testutils

import (
	"time"

	"customer-intake-portal/internal/database/models"

	"github.com/google/uuid"
)

// EmployeeFactory provides methods to create test Employee data
type EmployeeFactory struct{}

// NewEmployeeFactory creates a new EmployeeFactory
func NewEmployeeFactory() *EmployeeFactory {
	return &EmployeeFactory{}
}

// Create creates a test Employee with default values
func (f *EmployeeFactory) Create() *models.Employee {
	id := uuid.New()
	return &models.Employee{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:   "Rep Name",
		Email:  "rep@co.com",
		UserID: "I" + id.String()[:6],
	}
}

// WithEmail sets a custom email for the employee
func (f *EmployeeFactory) WithEmail(email string) *models.Employee {
	employee := f.Create()
	employee.Email = email
	return employee
}

// WithUserID sets a custom corporate directory account for the employee
func (f *EmployeeFactory) WithUserID(userID string) *models.Employee {
	employee := f.Create()
	employee.UserID = userID
	return employee
}

// CustomerFactory provides methods to create test Customer data
type CustomerFactory struct{}

// NewCustomerFactory creates a new CustomerFactory
func NewCustomerFactory() *CustomerFactory {
	return &CustomerFactory{}
}

// Create creates a test Customer with default values and no sales representative
func (f *CustomerFactory) Create() *models.Customer {
	return &models.Customer{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:  "Jane Doe Ltd",
		Email: "jane@x.com",
	}
}

// WithEmail sets a custom email for the customer
func (f *CustomerFactory) WithEmail(email string) *models.Customer {
	customer := f.Create()
	customer.Email = email
	return customer
}

// WithSalesRep assigns a sales representative to the customer
func (f *CustomerFactory) WithSalesRep(repID uuid.UUID) *models.Customer {
	customer := f.Create()
	customer.SalesRepID = &repID
	return customer
}

// InquiryFactory provides methods to create test Inquiry data
type InquiryFactory struct{}

// NewInquiryFactory creates a new InquiryFactory
func NewInquiryFactory() *InquiryFactory {
	return &InquiryFactory{}
}

// Create creates an unsaved test Inquiry without a customer reference
func (f *InquiryFactory) Create() *models.Inquiry {
	return &models.Inquiry{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@x.com",
		Subject:       "Pricing",
		Message:       "Need a quote",
	}
}

// WithCustomer sets the referenced customer of the inquiry
func (f *InquiryFactory) WithCustomer(customerID uuid.UUID) *models.Inquiry {
	inquiry := f.Create()
	inquiry.ReferencedCustomerID = &customerID
	return inquiry
}

// FactorySet provides access to all factories
type FactorySet struct {
	Employee *EmployeeFactory
	Customer *CustomerFactory
	Inquiry  *InquiryFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Employee: NewEmployeeFactory(),
		Customer: NewCustomerFactory(),
		Inquiry:  NewInquiryFactory(),
	}
}

// CreateCustomerWithSalesRep returns an unsaved employee and a customer assigned to them
func (fs *FactorySet) CreateCustomerWithSalesRep() (*models.Customer, *models.Employee) {
	rep := fs.Employee.Create()
	customer := fs.Customer.WithSalesRep(rep.ID)
	return customer, rep
}
