package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTaskRepository mocks the TaskRepository interface.
// WithTx returns the same mock so expectations cover transactional calls too.
type MockTaskRepository struct {
	mock.Mock
	db *sql.DB
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) Statistics(ctx context.Context, now time.Time) (*domain.TaskStatistics, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskStatistics), args.Error(1)
}

func (m *MockTaskRepository) WithTx(tx *sql.Tx) TaskRepository {
	return m
}

func (m *MockTaskRepository) DB() *sql.DB {
	return m.db
}
