package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/notify"
	"github.com/sangkips/xylem-api/pkg/pagination"
)

// TaskService handles tasks assigned to representatives
type TaskService struct {
	taskRepo     repository.TaskRepository
	repRepo      repository.MarketingRepRepository
	activityRepo repository.ActivityRepository
	notifier     notify.Notifier
}

// NewTaskService creates a new task service
func NewTaskService(
	taskRepo repository.TaskRepository,
	repRepo repository.MarketingRepRepository,
	activityRepo repository.ActivityRepository,
	notifier notify.Notifier,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		repRepo:      repRepo,
		activityRepo: activityRepo,
		notifier:     notifier,
	}
}

// CreateTaskInput represents the create task input
type CreateTaskInput struct {
	MarketingRep string
	Description  string
	DueDate      string
}

// CreateTask assigns a new task and notifies the representative
func (s *TaskService) CreateTask(ctx context.Context, input *CreateTaskInput) (*entity.Task, error) {
	var v validator
	var repID uuid.UUID
	v.uuid("marketing_rep", input.MarketingRep, &repID)
	v.required("description", input.Description)
	if err := v.err(); err != nil {
		return nil, err
	}
	due, err := ParseDate("due_date", input.DueDate)
	if err != nil {
		return nil, err
	}

	rep, err := s.repRepo.GetByID(ctx, repID)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, apperror.NewNotFoundError("Marketing representative")
	}

	task := &entity.Task{
		MarketingRepID: rep.ID,
		Description:    strings.TrimSpace(input.Description),
		Status:         enum.TaskStatusPending,
		DueDate:        due,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	task.MarketingRep = rep

	payload := map[string]string{"RepName": rep.Name, "Description": task.Description}
	if due != nil {
		payload["DueDate"] = due.Format(dateLayout)
	}
	notifyRep(ctx, s.notifier, notify.TemplateTaskAssigned, rep, payload)
	return task, nil
}

// ListTasks lists tasks, optionally for one representative and status
func (s *TaskService) ListTasks(ctx context.Context, repID *uuid.UUID, status string, params *pagination.PaginationParams) (*pagination.Page[entity.Task], error) {
	filter := repository.TaskFilter{RepID: repID}
	if status != "" {
		st, ok := enum.ParseTaskStatus(status)
		if !ok {
			return nil, apperror.NewFieldError("status", fmt.Sprintf("%q is not a valid choice.", status))
		}
		filter.Status = &st
	}
	tasks, total, err := s.taskRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(tasks, params, total)
}

// UpdateTaskStatus lets a representative move one of their own tasks to any
// status. Tasks of other representatives are reported as not found.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, repID, taskID uuid.UUID, status string) (*entity.Task, error) {
	st, ok := enum.ParseTaskStatus(status)
	if !ok {
		return nil, apperror.NewFieldError("status", fmt.Sprintf("%q is not a valid choice.", status))
	}
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil || task.MarketingRepID != repID {
		return nil, apperror.NewNotFoundError("Task")
	}
	if err := s.taskRepo.UpdateStatus(ctx, task.ID, st); err != nil {
		return nil, err
	}
	task.Status = st

	if st == enum.TaskStatusCompleted {
		err := s.activityRepo.Create(ctx, &entity.RecentActivity{
			MarketingRepID: repID,
			Description:    "Task completed: " + task.Description,
		})
		if err != nil {
			return nil, err
		}
	}
	return task, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return apperror.NewNotFoundError("Task")
	}
	return s.taskRepo.Delete(ctx, id)
}

// ListActivities pages through a representative's activity log, newest first
func (s *TaskService) ListActivities(ctx context.Context, repID uuid.UUID, params *pagination.PaginationParams) (*pagination.Page[entity.RecentActivity], error) {
	activities, total, err := s.activityRepo.List(ctx, repID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(activities, params, total)
}
