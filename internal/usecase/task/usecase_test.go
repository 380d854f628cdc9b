package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "task-manager-service/internal/domain/task"
	pkgerrors "task-manager-service/pkg/errors"
)

// fakeTaskRepo is an in-memory TaskRepository preserving insertion order.
type fakeTaskRepo struct {
	tasks []domain.Task
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	f.tasks = append(f.tasks, *t)
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	for _, t := range f.tasks {
		if t.ID == id && t.UserID == userID {
			out := t
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeTaskRepo) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	for i, existing := range f.tasks {
		if existing.ID == t.ID && existing.UserID == t.UserID {
			f.tasks[i] = *t
			return nil
		}
	}
	return pkgerrors.NewNotFoundError("task", "task not found")
}

func (f *fakeTaskRepo) Delete(ctx context.Context, userID, id string) error {
	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ID == id && t.UserID == userID {
			continue
		}
		kept = append(kept, t)
	}
	f.tasks = kept
	return nil
}

func setupService(t *testing.T) (*Service, *fakeTaskRepo) {
	repo := &fakeTaskRepo{}
	return New(repo, zaptest.NewLogger(t)), repo
}

func str(s string) *string { return &s }

func TestCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, _ := setupService(t)

		created, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID:   "u1",
			Title:    "  Buy milk  ",
			Priority: "Low",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Buy milk", created.Title)
		assert.Equal(t, "Low", created.Priority)
		assert.False(t, created.IsCompleted)
		assert.Nil(t, created.DueDate)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("With Due Date", func(t *testing.T) {
		svc, _ := setupService(t)

		created, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID:   "u1",
			Title:    "Pay rent",
			Priority: "High",
			DueDate:  "2026-10-01",
		})
		require.NoError(t, err)
		require.NotNil(t, created.DueDate)
		assert.Equal(t, 2026, created.DueDate.Year())
		assert.Equal(t, time.October, created.DueDate.Month())
	})

	t.Run("Missing Title", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Create(context.Background(), CreateTaskRequest{UserID: "u1", Priority: "Low"})
		var ve *pkgerrors.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("Invalid Priority", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Create(context.Background(), CreateTaskRequest{UserID: "u1", Title: "x", Priority: "Urgent"})
		var ve *pkgerrors.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("Invalid Due Date", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID: "u1", Title: "x", Priority: "Low", DueDate: "next tuesday",
		})
		var ve *pkgerrors.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestGet(t *testing.T) {
	t.Run("Round-Trips Create", func(t *testing.T) {
		svc, _ := setupService(t)

		created, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID:      "u1",
			Title:       "Buy milk",
			Description: "2 liters",
			Priority:    "Medium",
		})
		require.NoError(t, err)

		got, err := svc.Get(context.Background(), "u1", created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("Missing Is Not Found", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Get(context.Background(), "u1", "missing")
		var nf *pkgerrors.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("Foreign Task Is Not Found", func(t *testing.T) {
		svc, _ := setupService(t)

		created, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID: "bob", Title: "secret", Priority: "Low",
		})
		require.NoError(t, err)

		_, err = svc.Get(context.Background(), "alice", created.ID)
		var nf *pkgerrors.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("Partial Merge", func(t *testing.T) {
		svc, _ := setupService(t)

		created, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID:      "u1",
			Title:       "Buy milk",
			Description: "2 liters",
			Priority:    "Low",
		})
		require.NoError(t, err)

		updated, err := svc.Update(context.Background(), UpdateTaskRequest{
			UserID: "u1",
			ID:     created.ID,
			Title:  str("Buy oat milk"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", updated.Title)
		// Unspecified fields are untouched
		assert.Equal(t, "2 liters", updated.Description)
		assert.Equal(t, "Low", updated.Priority)
	})

	t.Run("Disjoint Updates Compose", func(t *testing.T) {
		svc, _ := setupService(t)

		created, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID: "u1", Title: "Buy milk", Priority: "Low",
		})
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), UpdateTaskRequest{
			UserID: "u1", ID: created.ID, Title: str("Buy oat milk"),
		})
		require.NoError(t, err)
		_, err = svc.Update(context.Background(), UpdateTaskRequest{
			UserID: "u1", ID: created.ID, Priority: str("High"),
		})
		require.NoError(t, err)

		got, err := svc.Get(context.Background(), "u1", created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", got.Title)
		assert.Equal(t, "High", got.Priority)
	})

	t.Run("Clears Due Date", func(t *testing.T) {
		svc, _ := setupService(t)

		created, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID: "u1", Title: "x", Priority: "Low", DueDate: "2026-10-01",
		})
		require.NoError(t, err)
		require.NotNil(t, created.DueDate)

		updated, err := svc.Update(context.Background(), UpdateTaskRequest{
			UserID: "u1", ID: created.ID, DueDate: str(""),
		})
		require.NoError(t, err)
		assert.Nil(t, updated.DueDate)
	})

	t.Run("Invalid Supplied Priority", func(t *testing.T) {
		svc, _ := setupService(t)

		created, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID: "u1", Title: "x", Priority: "Low",
		})
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), UpdateTaskRequest{
			UserID: "u1", ID: created.ID, Priority: str("Urgent"),
		})
		var ve *pkgerrors.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("Empty Supplied Title Rejected", func(t *testing.T) {
		svc, _ := setupService(t)

		created, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID: "u1", Title: "x", Priority: "Low",
		})
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), UpdateTaskRequest{
			UserID: "u1", ID: created.ID, Title: str("   "),
		})
		var ve *pkgerrors.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("Missing Task", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Update(context.Background(), UpdateTaskRequest{
			UserID: "u1", ID: "missing", Title: str("x"),
		})
		var nf *pkgerrors.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}

func TestDelete(t *testing.T) {
	t.Run("Delete Then Get Is Not Found", func(t *testing.T) {
		svc, _ := setupService(t)

		created, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID: "u1", Title: "x", Priority: "Low",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), "u1", created.ID))

		_, err = svc.Get(context.Background(), "u1", created.ID)
		var nf *pkgerrors.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("Missing Task", func(t *testing.T) {
		svc, _ := setupService(t)

		err := svc.Delete(context.Background(), "u1", "missing")
		var nf *pkgerrors.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}

func TestToggleCompletion(t *testing.T) {
	t.Run("Flips Flag", func(t *testing.T) {
		svc, _ := setupService(t)

		created, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID: "u1", Title: "x", Priority: "Low",
		})
		require.NoError(t, err)
		assert.False(t, created.IsCompleted)

		toggled, err := svc.ToggleCompletion(context.Background(), "u1", created.ID)
		require.NoError(t, err)
		assert.True(t, toggled.IsCompleted)
	})

	t.Run("Twice Is Identity", func(t *testing.T) {
		svc, _ := setupService(t)

		created, err := svc.Create(context.Background(), CreateTaskRequest{
			UserID: "u1", Title: "x", Priority: "Low",
		})
		require.NoError(t, err)

		_, err = svc.ToggleCompletion(context.Background(), "u1", created.ID)
		require.NoError(t, err)
		back, err := svc.ToggleCompletion(context.Background(), "u1", created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.IsCompleted, back.IsCompleted)
	})

	t.Run("Missing Task", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.ToggleCompletion(context.Background(), "u1", "missing")
		var nf *pkgerrors.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}

func TestList(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, CreateTaskRequest{UserID: "u1", Title: title, Priority: "Low"})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, CreateTaskRequest{UserID: "other", Title: "not mine", Priority: "Low"})
	require.NoError(t, err)

	resp, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
	require.Len(t, resp.Tasks, 3)
	assert.Equal(t, "first", resp.Tasks[0].Title)
	assert.Equal(t, "third", resp.Tasks[2].Title)
}

func TestStats(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	mk := func(priority string) string {
		created, err := svc.Create(ctx, CreateTaskRequest{UserID: "u1", Title: "t", Priority: priority})
		require.NoError(t, err)
		return created.ID
	}

	lowID := mk("Low")
	mk("Low")
	mk("Medium")
	mk("High")

	_, err := svc.ToggleCompletion(ctx, "u1", lowID)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 3, stats.Incomplete)
	assert.Equal(t, 2, stats.Low)
	assert.Equal(t, 1, stats.Medium)
	assert.Equal(t, 1, stats.High)
}
