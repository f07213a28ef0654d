package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a login account. Administrators and marketing representatives are
// distinguished by flags rather than roles.
type User struct {
	ID                        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username                  string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email                     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password                  string    `gorm:"size:255;not null" json:"-"`
	FirstName                 string    `gorm:"size:255" json:"first_name"`
	LastName                  string    `gorm:"size:255" json:"last_name"`
	IsAdmin                   bool      `gorm:"not null;default:false" json:"is_admin"`
	IsMarketingRepresentative bool      `gorm:"not null;default:false" json:"is_marketing_representative"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
