package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/xylem-api/internal/application/service"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/request"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/response"
	"github.com/sangkips/xylem-api/internal/presentation/http/middleware"
)

// TaskHandler serves admin task assignment, the representative's task list
// and the activity log.
type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List is the admin listing, optionally narrowed by rep_id and status
func (h *TaskHandler) List(c *gin.Context) {
	repID, err := service.ParseOptionalID("rep_id", c.Query("rep_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	params, err := pageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.taskService.ListTasks(c.Request.Context(), repID, c.Query("status"), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, page)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req request.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	task, err := h.taskService.CreateTask(c.Request.Context(), &service.CreateTaskInput{
		MarketingRep: req.MarketingRep,
		Description:  req.Description,
		DueDate:      req.DueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Task created successfully", task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := queryID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Task deleted successfully", nil)
}

// RepList pages through the representative's own tasks
func (h *TaskHandler) RepList(c *gin.Context) {
	rep := middleware.CurrentRep(c)
	params, err := pageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.taskService.ListTasks(c.Request.Context(), &rep.ID, c.Query("status"), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, page)
}

// RepUpdateStatus moves one of the representative's tasks
func (h *TaskHandler) RepUpdateStatus(c *gin.Context) {
	id, err := queryID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req request.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	task, err := h.taskService.UpdateTaskStatus(c.Request.Context(), middleware.CurrentRep(c).ID, id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Task updated successfully", task)
}

// Activities pages through the representative's activity log
func (h *TaskHandler) Activities(c *gin.Context) {
	params, err := pageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.taskService.ListActivities(c.Request.Context(), middleware.CurrentRep(c).ID, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, page)
}
