package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecentActivity is an append-only log line for a representative
type RecentActivity struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MarketingRepID uuid.UUID `gorm:"type:uuid;not null;index" json:"marketing_rep_id"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (a *RecentActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (RecentActivity) TableName() string {
	return "recent_activities"
}
