package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/pagination"
)

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rep := e.rep(t, "rina")

	task, err := e.tasks.CreateTask(ctx, &CreateTaskInput{MarketingRep: rep.ID.String(), Description: "Visit Savar", DueDate: "2024-05-01"})
	require.NoError(t, err)
	assert.Equal(t, enum.TaskStatusPending, task.Status)
	assert.Equal(t, "2024-05-01", task.DueDate.Format(dateLayout))
	assert.Equal(t, []string{"email:task_assigned", "sms:task_assigned"}, e.notifier.Templates())
	assert.Equal(t, "2024-05-01", e.notifier.Sent()[0].Payload["DueDate"])

	_, err = e.tasks.CreateTask(ctx, &CreateTaskInput{MarketingRep: uuid.NewString(), Description: "x"})
	assert.True(t, apperror.IsNotFound(err))

	_, err = e.tasks.CreateTask(ctx, &CreateTaskInput{MarketingRep: rep.ID.String(), Description: "x", DueDate: "tomorrow"})
	assert.True(t, apperror.IsInvalidArgument(err))
}

func TestUpdateTaskStatus(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rina, sami := e.rep(t, "rina"), e.rep(t, "sami")
	task, err := e.tasks.CreateTask(ctx, &CreateTaskInput{MarketingRep: rina.ID.String(), Description: "Collect invoices"})
	require.NoError(t, err)

	_, err = e.tasks.UpdateTaskStatus(ctx, sami.ID, task.ID, "completed")
	assert.True(t, apperror.IsNotFound(err))

	_, err = e.tasks.UpdateTaskStatus(ctx, rina.ID, task.ID, "done")
	assert.True(t, apperror.IsInvalidArgument(err))

	got, err := e.tasks.UpdateTaskStatus(ctx, rina.ID, task.ID, "in_progress")
	require.NoError(t, err)
	assert.Equal(t, enum.TaskStatusInProgress, got.Status)

	_, err = e.tasks.UpdateTaskStatus(ctx, rina.ID, task.ID, "completed")
	require.NoError(t, err)

	activities, err := e.tasks.ListActivities(ctx, rina.ID, pagination.DefaultPagination())
	require.NoError(t, err)
	require.Len(t, activities.Results, 1)
	assert.Equal(t, "Task completed: Collect invoices", activities.Results[0].Description)
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rina, sami := e.rep(t, "rina"), e.rep(t, "sami")
	for _, r := range []string{rina.ID.String(), rina.ID.String(), sami.ID.String()} {
		_, err := e.tasks.CreateTask(ctx, &CreateTaskInput{MarketingRep: r, Description: "task"})
		require.NoError(t, err)
	}

	page, err := e.tasks.ListTasks(ctx, &rina.ID, "", pagination.DefaultPagination())
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Count)

	page, err = e.tasks.ListTasks(ctx, nil, "pending", pagination.DefaultPagination())
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Count)

	_, err = e.tasks.ListTasks(ctx, nil, "late", pagination.DefaultPagination())
	assert.True(t, apperror.IsInvalidArgument(err))
}
