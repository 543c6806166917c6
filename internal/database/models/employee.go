package models

// Employee is an internal staff member. Customers point at an employee as their sales representative.
type Employee struct {
	BaseModel
	Name   string `json:"name" gorm:"not null;size:200" validate:"required,max=200"` // entity display name
	Email  string `json:"email" gorm:"size:255" validate:"omitempty,email,max=255"`
	UserID string `json:"user_id" gorm:"size:50;index" validate:"max=50"` // corporate directory account
}

// TableName returns the table name for Employee
func (Employee) TableName() string {
	return "employees"
}
