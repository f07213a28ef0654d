package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MarketingRepresentative is a field agent that manages fabricators and
// distributors and files sales reports. Each one owns exactly one User.
type MarketingRepresentative struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name        string    `gorm:"size:512;not null" json:"name"`
	PhoneNumber string    `gorm:"size:20;not null" json:"phone_number"`
	Email       string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	District    string    `gorm:"size:255;not null" json:"district"`
	SubDistrict string    `gorm:"size:255;not null" json:"sub_district"`
	EmployeeID  string    `gorm:"size:32;uniqueIndex;not null" json:"employee_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new representative
func (m *MarketingRepresentative) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MarketingRepresentative model
func (MarketingRepresentative) TableName() string {
	return "marketing_representatives"
}
