package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/xylem-api/internal/domain/enum"
)

// Fabricator is a self-registered client awaiting or holding approval
type Fabricator struct {
	ID                        uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	Name                      string                `gorm:"size:512;not null" json:"name"`
	Institution               string                `gorm:"size:255;not null" json:"institution"`
	RegistrationNumber        string                `gorm:"size:32;uniqueIndex;not null" json:"registration_number"`
	PhoneNumber               string                `gorm:"size:20;uniqueIndex;not null" json:"phone_number"`
	District                  string                `gorm:"size:255;not null" json:"district"`
	SubDistrict               string                `gorm:"size:255;not null" json:"sub_district"`
	Address                   *string               `gorm:"size:512" json:"address"`
	DistributorID             uuid.UUID             `gorm:"type:uuid;not null;index" json:"distributor_id"`
	MarketingRepresentativeID *uuid.UUID            `gorm:"type:uuid;index" json:"marketing_representative_id"`
	TradeLicenseImgURL        string                `gorm:"size:512;not null" json:"trade_license_img_url"`
	VisitingCardImgURL        string                `gorm:"size:512;not null" json:"visiting_card_img_url"`
	ProfileImgURL             string                `gorm:"size:512;not null" json:"profile_img_url"`
	Status                    enum.FabricatorStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt                 time.Time             `json:"created_at"`
	UpdatedAt                 time.Time             `json:"updated_at"`

	Distributor             *Distributor             `gorm:"foreignKey:DistributorID" json:"distributor,omitempty"`
	MarketingRepresentative *MarketingRepresentative `gorm:"foreignKey:MarketingRepresentativeID" json:"marketing_representative,omitempty"`
}

// BeforeCreate generates a UUID before creating a new fabricator
func (f *Fabricator) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Status == "" {
		f.Status = enum.FabricatorStatusPending
	}
	return nil
}

// TableName returns the table name for the Fabricator model
func (Fabricator) TableName() string {
	return "fabricators"
}

// IsAssignedTo reports whether repID is the fabricator's current representative
func (f *Fabricator) IsAssignedTo(repID uuid.UUID) bool {
	return f.MarketingRepresentativeID != nil && *f.MarketingRepresentativeID == repID
}
