package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inquiry is one submission of the public intake form.
// Text fields never hold an empty string; blank input is stored as a single space.
type Inquiry struct {
	ID                   uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt            time.Time  `json:"created_at"`
	CustomerName         string     `json:"customer_name" gorm:"not null;type:text" validate:"required"`
	CustomerEmail        string     `json:"customer_email" gorm:"not null;type:text" validate:"required"`
	ReferencedCustomerID *uuid.UUID `json:"referenced_customer_id,omitempty" gorm:"type:uuid;index"`
	Subject              string     `json:"subject" gorm:"not null;type:text" validate:"required"`
	Message              string     `json:"message" gorm:"not null;type:text" validate:"required"`

	// Relationships
	ReferencedCustomer *Customer `json:"referenced_customer,omitempty" gorm:"foreignKey:ReferencedCustomerID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Inquiry
func (Inquiry) TableName() string {
	return "inquiries"
}

// BeforeCreate sets the UUID if not already set
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
