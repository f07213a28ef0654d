package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Distributor supplies fabricators and may be managed by a representative
type Distributor struct {
	ID                        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name                      string     `gorm:"size:512;not null" json:"name"`
	PhoneNumber               string     `gorm:"size:20;not null" json:"phone_number"`
	Email                     string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	District                  string     `gorm:"size:255;not null" json:"district"`
	SubDistrict               string     `gorm:"size:255;not null" json:"sub_district"`
	MarketingRepresentativeID *uuid.UUID `gorm:"type:uuid;index" json:"marketing_representative_id"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`

	MarketingRepresentative *MarketingRepresentative `gorm:"foreignKey:MarketingRepresentativeID" json:"marketing_representative,omitempty"`
}

// BeforeCreate generates a UUID before creating a new distributor
func (d *Distributor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Distributor model
func (Distributor) TableName() string {
	return "distributors"
}
