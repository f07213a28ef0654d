package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/xylem-api/internal/domain/enum"
)

// Task is a piece of work an administrator assigns to a representative
type Task struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	MarketingRepID uuid.UUID       `gorm:"type:uuid;not null;index" json:"marketing_rep_id"`
	Description    string          `gorm:"type:text;not null" json:"description"`
	Status         enum.TaskStatus `gorm:"size:20;not null;default:pending" json:"status"`
	DueDate        *time.Time      `gorm:"type:date" json:"due_date"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	MarketingRep *MarketingRepresentative `gorm:"foreignKey:MarketingRepID" json:"marketing_rep,omitempty"`
}

// BeforeCreate generates a UUID before creating a new task
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = enum.TaskStatusPending
	}
	return nil
}

// TableName returns the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}
