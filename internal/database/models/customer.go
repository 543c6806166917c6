package models

import "github.com/google/uuid"

// Customer is an existing customer account, matched against intake submissions by email.
type Customer struct {
	BaseModel
	Name       string     `json:"name" gorm:"not null;size:255" validate:"required,max=255"`
	Email      string     `json:"email" gorm:"size:255;index" validate:"omitempty,email,max=255"` // not unique: several accounts may share an address
	SalesRepID *uuid.UUID `json:"sales_rep_id,omitempty" gorm:"type:uuid;index"`

	// Relationships
	SalesRep *Employee `json:"sales_rep,omitempty" gorm:"foreignKey:SalesRepID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Customer
func (Customer) TableName() string {
	return "customers"
}
