package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/sqlstore"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// TaskOption customizes a task built by NewTaskForTest.
type TaskOption func(*domain.Task)

// WithTaskTitle sets the title.
func WithTaskTitle(title string) TaskOption {
	return func(t *domain.Task) { t.Title = title }
}

// WithTaskDescription sets the description.
func WithTaskDescription(desc string) TaskOption {
	return func(t *domain.Task) { t.Description = &desc }
}

// WithTaskPriority sets the priority.
func WithTaskPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) { t.Priority = p }
}

// WithTaskDueDate sets the due date.
func WithTaskDueDate(due time.Time) TaskOption {
	return func(t *domain.Task) {
		due = due.UTC()
		t.DueDate = &due
	}
}

// WithTaskCompleted marks the task completed.
func WithTaskCompleted() TaskOption {
	return func(t *domain.Task) { t.IsCompleted = true }
}

// WithTaskCreatedAt sets both timestamps.
func WithTaskCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = at.UTC()
		t.UpdatedAt = at.UTC()
	}
}

// NewTaskForTest builds a valid, unsaved Medium task.
func NewTaskForTest(opts ...TaskOption) *domain.Task {
	task := domain.NewTask(domain.CreateTaskParams{
		Title:    "Test task",
		Priority: domain.PriorityMedium,
	}, time.Now())
	for _, opt := range opts {
		opt(task)
	}
	return task
}

// MustInsertTask saves a task built from opts and fails the test on error.
func MustInsertTask(ctx context.Context, t *testing.T, db store.DBTX, opts ...TaskOption) *domain.Task {
	t.Helper()

	task := NewTaskForTest(opts...)
	if err := sqlstore.NewTaskStore(db, nil).Create(ctx, task); err != nil {
		t.Fatalf("failed to insert task %q: %v", task.Title, err)
	}
	return task
}
