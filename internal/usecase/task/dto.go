package task

import "time"

// CreateTaskRequest represents the payload for creating a task.
type CreateTaskRequest struct {
	UserID      string `validate:"required"`
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=1000"`
	Priority    string `validate:"required,oneof=Low Medium High"`
	DueDate     string // optional, ISO-8601
}

// UpdateTaskRequest represents a partial update. Nil fields are left
// untouched; supplied fields are validated the same way as in Create.
type UpdateTaskRequest struct {
	UserID      string
	ID          string
	Title       *string
	Description *string
	Priority    *string
	DueDate     *string // empty string clears the due date
	IsCompleted *bool
}

// Task is the task representation returned to callers.
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    string
	IsCompleted bool
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListTasksResponse is the response payload for listing a user's tasks.
type ListTasksResponse struct {
	Tasks []Task
	Count int
}

// StatsResponse holds the derived counts over a user's task list.
type StatsResponse struct {
	Total      int
	Completed  int
	Incomplete int
	Low        int
	Medium     int
	High       int
}
