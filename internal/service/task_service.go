package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/redact"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// TaskService provides task-related operations. Payloads are expected to have
// passed validation already.
type TaskService interface {
	// ListTasks returns the tasks matching filter, newest first.
	ListTasks(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)

	// GetTask returns a task by ID, or ErrTaskNotFound.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// CreateTask stores a new, incomplete task and returns it with its ID.
	CreateTask(ctx context.Context, params domain.CreateTaskParams) (*domain.Task, error)

	// UpdateTask overwrites the fields present in params and refreshes
	// UpdatedAt, or returns ErrTaskNotFound.
	UpdateTask(ctx context.Context, id int64, params domain.UpdateTaskParams) (*domain.Task, error)

	// DeleteTask removes a task permanently, or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id int64) error

	// CompleteTask marks a task completed, or returns ErrTaskNotFound.
	// Completing a completed task only refreshes UpdatedAt.
	CompleteTask(ctx context.Context, id int64) (*domain.Task, error)

	// GetStatistics computes the aggregate figures over all tasks.
	GetStatistics(ctx context.Context) (*domain.TaskStatistics, error)
}

// Option configures the task service.
type Option func(*taskServiceImpl)

// WithClock replaces the clock used for timestamps and the overdue cutoff.
func WithClock(now func() time.Time) Option {
	return func(s *taskServiceImpl) {
		s.now = now
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskRepo TaskRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewTaskService creates a new TaskService.
// It returns an error if taskRepo is nil.
func NewTaskService(taskRepo TaskRepository, logger *slog.Logger, opts ...Option) (TaskService, error) {
	if taskRepo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskRepo cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &taskServiceImpl{
		taskRepo: taskRepo,
		logger:   logger.With(slog.String("component", "task_service")),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *taskServiceImpl) clock() time.Time {
	return s.now().UTC()
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list tasks", redact.ErrorAttr(err))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(log, "get_task", id, err)
	}

	log.Debug("task retrieved", slog.Int64("task_id", id))
	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, params domain.CreateTaskParams) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task := domain.NewTask(params, s.clock())
	if err := s.taskRepo.Create(ctx, task); err != nil {
		log.Error("failed to create task", redact.ErrorAttr(err))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("priority", task.Priority.String()))
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
// The load and the write run in one transaction.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	params domain.UpdateTaskParams,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.taskRepo.WithTx(tx)

		task, err := txRepo.GetByID(ctx, id)
		if err != nil {
			return s.lookupError(log, "update_task", id, err)
		}

		task.ApplyUpdate(params, s.clock())
		if err := txRepo.Update(ctx, task); err != nil {
			log.Error("failed to update task in transaction",
				redact.ErrorAttr(err),
				slog.Int64("task_id", id))
			return NewTaskServiceError("update_task", "failed to save task", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, wrapTxError("update_task", err)
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.taskRepo.WithTx(tx)

		if _, err := txRepo.GetByID(ctx, id); err != nil {
			return s.lookupError(log, "delete_task", id, err)
		}

		if err := txRepo.Delete(ctx, id); err != nil {
			log.Error("failed to delete task in transaction",
				redact.ErrorAttr(err),
				slog.Int64("task_id", id))
			return NewTaskServiceError("delete_task", "failed to delete task", err)
		}
		return nil
	})
	if err != nil {
		return wrapTxError("delete_task", err)
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// CompleteTask implements TaskService.CompleteTask
func (s *taskServiceImpl) CompleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var completed *domain.Task
	err := store.RunInTransaction(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.taskRepo.WithTx(tx)

		task, err := txRepo.GetByID(ctx, id)
		if err != nil {
			return s.lookupError(log, "complete_task", id, err)
		}

		task.Complete(s.clock())
		if err := txRepo.Update(ctx, task); err != nil {
			log.Error("failed to complete task in transaction",
				redact.ErrorAttr(err),
				slog.Int64("task_id", id))
			return NewTaskServiceError("complete_task", "failed to save task", err)
		}

		completed = task
		return nil
	})
	if err != nil {
		return nil, wrapTxError("complete_task", err)
	}

	log.Info("task completed", slog.Int64("task_id", id))
	return completed, nil
}

// GetStatistics implements TaskService.GetStatistics
func (s *taskServiceImpl) GetStatistics(ctx context.Context) (*domain.TaskStatistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stats, err := s.taskRepo.Statistics(ctx, s.clock())
	if err != nil {
		log.Error("failed to compute task statistics", redact.ErrorAttr(err))
		return nil, NewTaskServiceError("get_statistics", "failed to compute statistics", err)
	}

	log.Debug("task statistics computed",
		slog.Int("total", stats.TotalTasks),
		slog.Int("overdue", stats.OverdueTasks))
	return stats, nil
}

// lookupError logs a failed GetByID and converts it to a service error.
func (s *taskServiceImpl) lookupError(log *slog.Logger, operation string, id int64, err error) error {
	if errors.Is(err, store.ErrTaskNotFound) {
		log.Warn("task not found",
			slog.String("operation", operation),
			slog.Int64("task_id", id))
		return ErrTaskNotFound
	}
	log.Error("failed to load task",
		slog.String("operation", operation),
		redact.ErrorAttr(err),
		slog.Int64("task_id", id))
	return NewTaskServiceError(operation, "failed to load task", err)
}

// wrapTxError keeps errors produced inside the transaction as they are and
// wraps failures of the transaction itself.
func wrapTxError(operation string, err error) error {
	var svcErr *TaskServiceError
	if errors.Is(err, ErrTaskNotFound) || errors.As(err, &svcErr) {
		return err
	}
	return NewTaskServiceError(operation, "transaction failed", err)
}
