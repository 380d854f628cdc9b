package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "task-manager-service/internal/domain/task"
	pkgerrors "task-manager-service/pkg/errors"
)

// dueDateLayouts are the accepted due date formats, full timestamps and
// bare dates.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// TaskRepository defines the interface for task data access operations.
// Lookups are owner-scoped: a foreign task id reads as missing.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error                           // Append a new task
	GetByID(ctx context.Context, userID, id string) (*domain.Task, error)       // Owner-scoped lookup, miss is (nil, nil)
	ListByUser(ctx context.Context, userID string) ([]domain.Task, error)       // Insertion-order list
	Update(ctx context.Context, t *domain.Task) error                           // Replace by id and owner
	Delete(ctx context.Context, userID, id string) error                        // Owner-scoped delete, absent is a no-op
}

// Service implements the task management business logic.
type Service struct {
	repo     TaskRepository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new task Service.
func New(repo TaskRepository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log, validate: validator.New()}
}

// List returns all tasks owned by the caller in store insertion order.
func (s *Service) List(ctx context.Context, userID string) (*ListTasksResponse, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("failed to list tasks", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = toDTO(&t)
	}
	return &ListTasksResponse{Tasks: out, Count: len(out)}, nil
}

// Create validates the request and appends a new incomplete task.
func (s *Service) Create(ctx context.Context, in CreateTaskRequest) (*Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("create task validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	due, err := parseDueDate(in.DueDate)
	if err != nil {
		s.log.Warn("invalid due date", zap.String("due_date", in.DueDate))
		return nil, err
	}

	now := time.Now().UTC()
	t := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    domain.Priority(in.Priority),
		IsCompleted: false,
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.log.Error("failed to create task", zap.String("user_id", in.UserID), zap.Error(err))
		return nil, err
	}

	s.log.Info("task created", zap.String("id", t.ID), zap.String("user_id", in.UserID))
	dto := toDTO(t)
	return &dto, nil
}

// Get returns the task with the given id if the caller owns it.
func (s *Service) Get(ctx context.Context, userID, id string) (*Task, error) {
	t, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(t)
	return &dto, nil
}

// Update merges the supplied fields over the existing task. Unspecified
// fields are left untouched; each supplied field is validated as in Create.
func (s *Service) Update(ctx context.Context, in UpdateTaskRequest) (*Task, error) {
	t, err := s.getOwned(ctx, in.UserID, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" || len(title) > 200 {
			return nil, pkgerrors.NewValidationError("title", "title must be between 1 and 200 characters")
		}
		t.Title = title
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if len(desc) > 1000 {
			return nil, pkgerrors.NewValidationError("description", "description must be less than 1000 characters")
		}
		t.Description = desc
	}
	if in.Priority != nil {
		p, ok := domain.ParsePriority(*in.Priority)
		if !ok {
			return nil, pkgerrors.NewValidationError("priority", "priority must be Low, Medium, or High")
		}
		t.Priority = p
	}
	if in.DueDate != nil {
		due, err := parseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		t.DueDate = due
	}
	if in.IsCompleted != nil {
		t.IsCompleted = *in.IsCompleted
	}

	t.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, t); err != nil {
		s.log.Error("failed to update task", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}

	s.log.Info("task updated", zap.String("id", in.ID), zap.String("user_id", in.UserID))
	dto := toDTO(t)
	return &dto, nil
}

// Delete removes the task if the caller owns it.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		s.log.Error("failed to delete task", zap.String("id", id), zap.Error(err))
		return err
	}

	s.log.Info("task deleted", zap.String("id", id), zap.String("user_id", userID))
	return nil
}

// ToggleCompletion flips the task's completion flag.
func (s *Service) ToggleCompletion(ctx context.Context, userID, id string) (*Task, error) {
	t, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	t.IsCompleted = !t.IsCompleted
	t.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, t); err != nil {
		s.log.Error("failed to toggle task", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.log.Info("task toggled", zap.String("id", id), zap.Bool("is_completed", t.IsCompleted))
	dto := toDTO(t)
	return &dto, nil
}

// Stats scans the caller's task list and derives completion and priority
// counts. Nothing is stored.
func (s *Service) Stats(ctx context.Context, userID string) (*StatsResponse, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("failed to load tasks for stats", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	st := domain.ComputeStats(tasks)
	return &StatsResponse{
		Total:      st.Total,
		Completed:  st.Completed,
		Incomplete: st.Incomplete,
		Low:        st.Low,
		Medium:     st.Medium,
		High:       st.High,
	}, nil
}

// getOwned loads a task owned by userID, converting a miss (foreign or
// absent id alike) into NotFoundError.
func (s *Service) getOwned(ctx context.Context, userID, id string) (*domain.Task, error) {
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		s.log.Error("failed to get task", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if t == nil {
		return nil, pkgerrors.NewNotFoundError("task", "task not found")
	}
	return t, nil
}

// parseDueDate parses an optional due date string. Empty means no due date.
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			ts = ts.UTC()
			return &ts, nil
		}
	}
	return nil, pkgerrors.NewValidationError("dueDate", "due date must be a valid ISO date")
}

// formatValidationError converts validator.ValidationErrors into a single
// human-readable validation error.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			case "oneof":
				messages = append(messages, fmt.Sprintf("%s must be Low, Medium, or High", e.Field()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

func toDTO(t *domain.Task) Task {
	return Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		IsCompleted: t.IsCompleted,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Ensure Service implements Usecase.
var _ Usecase = (*Service)(nil)
