package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// TaskRepository defines the repository interface for the service layer.
// It mirrors store.TaskStore and exposes the database handle needed to open
// transactions.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context, now time.Time) (*domain.TaskStatistics, error)

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) TaskRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// NewTaskRepositoryAdapter creates a new adapter that allows a store.TaskStore
// to be used where a TaskRepository is expected.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) TaskRepository {
	return &taskRepositoryAdapter{
		TaskStore: taskStore,
		db:        db,
	}
}

// taskRepositoryAdapter adapts a store.TaskStore to the TaskRepository interface.
// All data methods are promoted from the embedded store.
type taskRepositoryAdapter struct {
	store.TaskStore
	db *sql.DB
}

// WithTx implements TaskRepository.WithTx
func (a *taskRepositoryAdapter) WithTx(tx *sql.Tx) TaskRepository {
	return &taskRepositoryAdapter{
		TaskStore: a.TaskStore.WithTx(tx),
		db:        a.db,
	}
}

// DB implements TaskRepository.DB
func (a *taskRepositoryAdapter) DB() *sql.DB {
	return a.db
}
