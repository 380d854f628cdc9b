package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-manager-service/internal/adapter/gin/middleware"
	"task-manager-service/internal/usecase/task"
	pkgerrors "task-manager-service/pkg/errors"
)

// TaskHandler handles HTTP requests for task operations. All routes sit
// behind the authentication gate, so the caller's user id is always
// present in the request context.
type TaskHandler struct {
	uc  task.Usecase
	log *zap.Logger
}

// NewTaskHandler creates a new TaskHandler instance.
func NewTaskHandler(uc task.Usecase, log *zap.Logger) *TaskHandler {
	return &TaskHandler{
		uc:  uc,
		log: log,
	}
}

// CreateTaskRequest represents the HTTP request body for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

// UpdateTaskRequest represents the HTTP request body for a partial task
// update. Absent fields stay untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
	IsCompleted *bool   `json:"isCompleted"`
}

// TaskResponse represents the HTTP response for task data.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	IsCompleted bool       `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// StatsResponse represents the HTTP response for task statistics.
type StatsResponse struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Incomplete int `json:"incomplete"`
	Low        int `json:"low"`
	Medium     int `json:"medium"`
	High       int `json:"high"`
}

func toTaskResponse(t task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		IsCompleted: t.IsCompleted,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// List handles GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	resp, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	tasks := make([]TaskResponse, len(resp.Tasks))
	for i, t := range resp.Tasks {
		tasks[i] = toTaskResponse(t)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   tasks,
		"count":   resp.Count,
	})
}

// Get handles GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	t, err := h.uc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    toTaskResponse(*t),
	})
}

// Create handles POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create task request body", zap.Error(err))
		respondError(c, pkgerrors.NewValidationError("", "invalid request body"))
		return
	}

	t, err := h.uc.Create(c.Request.Context(), task.CreateTaskRequest{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Task created successfully",
		"task":    toTaskResponse(*t),
	})
}

// Update handles PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update task request body", zap.Error(err))
		respondError(c, pkgerrors.NewValidationError("", "invalid request body"))
		return
	}

	t, err := h.uc.Update(c.Request.Context(), task.UpdateTaskRequest{
		UserID:      userID,
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task updated successfully",
		"task":    toTaskResponse(*t),
	})
}

// Delete handles DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)

	if err := h.uc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted successfully",
	})
}

// Toggle handles PATCH /api/tasks/:id/toggle
func (h *TaskHandler) Toggle(c *gin.Context) {
	userID := middleware.UserID(c)

	t, err := h.uc.ToggleCompletion(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    toTaskResponse(*t),
	})
}

// Stats handles GET /api/tasks/stats
func (h *TaskHandler) Stats(c *gin.Context) {
	userID := middleware.UserID(c)

	resp, err := h.uc.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": StatsResponse{
			Total:      resp.Total,
			Completed:  resp.Completed,
			Incomplete: resp.Incomplete,
			Low:        resp.Low,
			Medium:     resp.Medium,
			High:       resp.High,
		},
	})
}
