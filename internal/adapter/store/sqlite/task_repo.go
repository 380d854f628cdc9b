package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"task-manager-service/internal/domain/task"
	pkgerrors "task-manager-service/pkg/errors"
)

// TaskSchema represents the database schema for the tasks table.
type TaskSchema struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Priority    string `gorm:"not null"`
	IsCompleted bool   `gorm:"not null"`
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the TaskSchema model.
func (TaskSchema) TableName() string {
	return "tasks"
}

// TaskRepo implements the task usecase's TaskRepository using sqlite.
// All lookups filter by the owning user id.
type TaskRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewTaskRepo creates a new sqlite-backed TaskRepo.
func NewTaskRepo(db *gorm.DB, log *zap.Logger) *TaskRepo {
	return &TaskRepo{db: db, log: log}
}

// Create inserts a new task.
func (r *TaskRepo) Create(ctx context.Context, t *task.Task) error {
	if t == nil {
		return errors.New("task cannot be nil")
	}

	model := toSchema(t)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create task in db", zap.Error(err), zap.String("id", t.ID))
		return pkgerrors.NewStoreError("write", fmt.Errorf("failed to create task: %w", err))
	}

	r.log.Info("task created in db", zap.String("id", t.ID), zap.String("user_id", t.UserID))
	return nil
}

// GetByID retrieves a task owned by userID. A missing or foreign task
// returns (nil, nil).
func (r *TaskRepo) GetByID(ctx context.Context, userID, id string) (*task.Task, error) {
	var model TaskSchema
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to get task from db", zap.Error(err), zap.String("id", id))
		return nil, pkgerrors.NewStoreError("read", fmt.Errorf("failed to get task: %w", err))
	}

	t := model.toDomain()
	return &t, nil
}

// ListByUser returns the user's tasks in insertion order.
func (r *TaskRepo) ListByUser(ctx context.Context, userID string) ([]task.Task, error) {
	var models []TaskSchema
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&models).Error
	if err != nil {
		r.log.Error("failed to list tasks from db", zap.Error(err), zap.String("user_id", userID))
		return nil, pkgerrors.NewStoreError("read", fmt.Errorf("failed to list tasks: %w", err))
	}

	tasks := make([]task.Task, len(models))
	for i, m := range models {
		tasks[i] = m.toDomain()
	}
	return tasks, nil
}

// Update replaces the stored record matching the task's id and owner.
func (r *TaskRepo) Update(ctx context.Context, t *task.Task) error {
	if t == nil {
		return errors.New("task cannot be nil")
	}

	model := toSchema(t)
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", t.ID, t.UserID).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(&model)
	if res.Error != nil {
		r.log.Error("failed to update task in db", zap.Error(res.Error), zap.String("id", t.ID))
		return pkgerrors.NewStoreError("write", fmt.Errorf("failed to update task: %w", res.Error))
	}
	if res.RowsAffected == 0 {
		return pkgerrors.NewNotFoundError("task", "task not found")
	}

	return nil
}

// Delete removes the task owned by userID. Deleting an absent task is a
// no-op.
func (r *TaskRepo) Delete(ctx context.Context, userID, id string) error {
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&TaskSchema{}).Error
	if err != nil {
		r.log.Error("failed to delete task in db", zap.Error(err), zap.String("id", id))
		return pkgerrors.NewStoreError("write", fmt.Errorf("failed to delete task: %w", err))
	}

	r.log.Info("task deleted in db", zap.String("id", id), zap.String("user_id", userID))
	return nil
}

func toSchema(t *task.Task) TaskSchema {
	return TaskSchema{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		IsCompleted: t.IsCompleted,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *TaskSchema) toDomain() task.Task {
	return task.Task{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    task.Priority(m.Priority),
		IsCompleted: m.IsCompleted,
		DueDate:     m.DueDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
