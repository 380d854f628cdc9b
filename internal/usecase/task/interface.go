package task

import "context"

// Usecase defines the interface for task business logic operations.
// Every operation is scoped to the authenticated caller's user id.
type Usecase interface {
	List(ctx context.Context, userID string) (*ListTasksResponse, error)
	Create(ctx context.Context, in CreateTaskRequest) (*Task, error)
	Get(ctx context.Context, userID, id string) (*Task, error)
	Update(ctx context.Context, in UpdateTaskRequest) (*Task, error)
	Delete(ctx context.Context, userID, id string) error
	ToggleCompletion(ctx context.Context, userID, id string) (*Task, error)
	Stats(ctx context.Context, userID string) (*StatsResponse, error)
}
