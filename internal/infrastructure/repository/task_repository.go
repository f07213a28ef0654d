package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	domainRepo "github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/pkg/pagination"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) domainRepo.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	return conn(ctx, r.db).Omit("MarketingRep").Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	var task entity.Task
	err := conn(ctx, r.db).Preload("MarketingRep").First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &task, err
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TaskStatus) error {
	return conn(ctx, r.db).Model(&entity.Task{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Task{}, "id = ?", id).Error
}

func (r *taskRepository) List(ctx context.Context, filter domainRepo.TaskFilter, params *pagination.PaginationParams) ([]entity.Task, int64, error) {
	var tasks []entity.Task
	var total int64

	query := conn(ctx, r.db).Model(&entity.Task{})
	if filter.RepID != nil {
		query = query.Where("marketing_rep_id = ?", *filter.RepID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("MarketingRep").
		Offset(params.Offset()).Limit(params.Limit()).
		Order("due_date ASC NULLS LAST, created_at DESC, id ASC").
		Find(&tasks).Error

	return tasks, total, err
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new recent activity repository
func NewActivityRepository(db *gorm.DB) domainRepo.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *entity.RecentActivity) error {
	return conn(ctx, r.db).Create(activity).Error
}

func (r *activityRepository) List(ctx context.Context, repID uuid.UUID, params *pagination.PaginationParams) ([]entity.RecentActivity, int64, error) {
	var activities []entity.RecentActivity
	var total int64

	query := conn(ctx, r.db).Model(&entity.RecentActivity{}).Where("marketing_rep_id = ?", repID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.Limit()).
		Order("created_at DESC, id DESC").
		Find(&activities).Error

	return activities, total, err
}
