package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// TaskFilter narrows a task listing. Nil fields do not filter.
type TaskFilter struct {
	IsCompleted *bool
	Priority    *domain.Priority
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create inserts task and sets task.ID to the generated identifier.
	// Returns ErrInvalidEntity if the task fails domain validation or a
	// schema constraint.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns the tasks matching filter, newest first. Tasks created at
	// the same instant are ordered by descending ID.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update overwrites every mutable column of the stored task with the
	// values in task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// Statistics aggregates the whole table. Tasks that are not completed and
	// whose due date is strictly before now count as overdue.
	Statistics(ctx context.Context, now time.Time) (*domain.TaskStatistics, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	WithTx(tx *sql.Tx) TaskStore
}
