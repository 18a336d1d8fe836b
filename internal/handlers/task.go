package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-client/internal/dto"
	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/middleware"
	"github.com/yukikurage/taskboard-client/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type taskRequest struct {
	ColumnID    string  `json:"column_id"`
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Assignee    *string `json:"assignee"`
	Priority    *int    `json:"priority"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

func (r taskRequest) input() services.TaskInput {
	return services.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Assignee:    r.Assignee,
		Priority:    r.Priority,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

// ListColumnTasks returns the tasks of the column loaded by
// RequireColumnAccess, newest first
func (h *TaskHandler) ListColumnTasks(c *gin.Context) {
	column, ok := middleware.GetColumn(c)
	if !ok {
		apierrors.InternalError(c, "Column not found in context")
		return
	}

	tasks, err := h.taskService.ListTasks(column.ID)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.ToTaskListDTO(tasks), "")
}

// GetTask returns the task loaded by RequireTaskAccess
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	respond(c, http.StatusOK, dto.ToTaskDTO(*task), "")
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ColumnID == "" {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(userID, req.ColumnID, req.input())
	if err != nil {
		respondResourceError(c, err)
		return
	}

	respond(c, http.StatusCreated, dto.ToCreatedTaskDTO(*task), "Task created")
}

// UpdateTask updates an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(task, req.input())
	if err != nil {
		respondResourceError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.ToTaskDTO(*task), "Task updated")
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondResourceError(c, err)
		return
	}

	noContent(c)
}
