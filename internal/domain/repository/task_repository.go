package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/pkg/pagination"
)

type TaskFilter struct {
	RepID  *uuid.UUID
	Status *enum.TaskStatus
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TaskStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List orders by due date (nulls last), then created_at DESC, then id
	List(ctx context.Context, filter TaskFilter, params *pagination.PaginationParams) ([]entity.Task, int64, error)
}

// ActivityRepository is append-only: activities are never updated or deleted
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.RecentActivity) error
	// List returns a rep's activities newest first
	List(ctx context.Context, repID uuid.UUID, params *pagination.PaginationParams) ([]entity.RecentActivity, int64, error)
}
