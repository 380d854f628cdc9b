package jsonfile

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"task-manager-service/internal/domain/task"
	pkgerrors "task-manager-service/pkg/errors"
)

// taskRecord is the on-disk representation of a task.
type taskRecord struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	IsCompleted bool       `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (r taskRecord) toDomain() task.Task {
	return task.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    task.Priority(r.Priority),
		IsCompleted: r.IsCompleted,
		DueDate:     r.DueDate,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toTaskRecord(t *task.Task) taskRecord {
	return taskRecord{
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

// TaskRepo implements the task usecase's TaskRepository over the JSON file
// store. Lookups are scoped to the owning user so a foreign task id is
// indistinguishable from a missing one.
type TaskRepo struct {
	store *Store
	log   *zap.Logger
	mu    sync.RWMutex
}

// NewTaskRepo creates a new TaskRepo backed by the given store.
func NewTaskRepo(store *Store, log *zap.Logger) *TaskRepo {
	return &TaskRepo{store: store, log: log}
}

// Create appends a new task to the collection.
func (r *TaskRepo) Create(ctx context.Context, t *task.Task) error {
	if t == nil {
		return errors.New("task cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var records []taskRecord
	if err := r.store.ReadAll(TasksCollection, &records); err != nil {
		return pkgerrors.NewStoreError("read", err)
	}

	records = append(records, toTaskRecord(t))

	if err := r.store.WriteAll(TasksCollection, records); err != nil {
		r.log.Error("failed to persist task", zap.String("id", t.ID), zap.Error(err))
		return pkgerrors.NewStoreError("write", err)
	}

	r.log.Info("task created", zap.String("id", t.ID), zap.String("user_id", t.UserID))
	return nil
}

// GetByID retrieves a task owned by userID. A missing or foreign task
// returns (nil, nil).
func (r *TaskRepo) GetByID(ctx context.Context, userID, id string) (*task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []taskRecord
	if err := r.store.ReadAll(TasksCollection, &records); err != nil {
		return nil, pkgerrors.NewStoreError("read", err)
	}

	for _, rec := range records {
		if rec.ID == id && rec.UserID == userID {
			t := rec.toDomain()
			return &t, nil
		}
	}
	return nil, nil
}

// ListByUser returns the user's tasks in store insertion order.
func (r *TaskRepo) ListByUser(ctx context.Context, userID string) ([]task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []taskRecord
	if err := r.store.ReadAll(TasksCollection, &records); err != nil {
		return nil, pkgerrors.NewStoreError("read", err)
	}

	tasks := make([]task.Task, 0, len(records))
	for _, rec := range records {
		if rec.UserID == userID {
			tasks = append(tasks, rec.toDomain())
		}
	}
	return tasks, nil
}

// Update replaces the stored record matching the task's id and owner.
func (r *TaskRepo) Update(ctx context.Context, t *task.Task) error {
	if t == nil {
		return errors.New("task cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var records []taskRecord
	if err := r.store.ReadAll(TasksCollection, &records); err != nil {
		return pkgerrors.NewStoreError("read", err)
	}

	for i, rec := range records {
		if rec.ID == t.ID && rec.UserID == t.UserID {
			records[i] = toTaskRecord(t)
			if err := r.store.WriteAll(TasksCollection, records); err != nil {
				r.log.Error("failed to persist task update", zap.String("id", t.ID), zap.Error(err))
				return pkgerrors.NewStoreError("write", err)
			}
			return nil
		}
	}

	return pkgerrors.NewNotFoundError("task", "task not found")
}

// Delete removes the task owned by userID. Deleting an absent task is a
// no-op.
func (r *TaskRepo) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []taskRecord
	if err := r.store.ReadAll(TasksCollection, &records); err != nil {
		return pkgerrors.NewStoreError("read", err)
	}

	filtered := records[:0]
	for _, rec := range records {
		if rec.ID == id && rec.UserID == userID {
			continue
		}
		filtered = append(filtered, rec)
	}

	if err := r.store.WriteAll(TasksCollection, filtered); err != nil {
		r.log.Error("failed to persist task delete", zap.String("id", id), zap.Error(err))
		return pkgerrors.NewStoreError("write", err)
	}

	r.log.Info("task deleted", zap.String("id", id), zap.String("user_id", userID))
	return nil
}
