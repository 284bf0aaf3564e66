package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/redact"
	"github.com/phrazzld/task-manager-api/internal/store"
)

const taskColumns = `id, title, description, is_completed, priority, due_date, created_at, updated_at`

// TaskStore implements the store.TaskStore interface on top of a
// *sql.DB or *sql.Tx.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a TaskStore. It accepts a database connection or
// transaction that is initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.WithTx.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", redact.ErrorAttr(err))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (title, description, is_completed, priority, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		nullString(task.Description),
		task.IsCompleted,
		int(task.Priority),
		nullTime(task.DueDate),
		task.CreatedAt.UTC(),
		task.UpdatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		log.Error("failed to create task", redact.ErrorAttr(err))
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}

	task.ID = id
	log.Debug("task created", slog.Int64("task_id", id))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			redact.ErrorAttr(err),
			slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "get", "failed to query task", MapError(err))
	}

	return task, nil
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		conds []string
		args  []any
	)
	if filter.IsCompleted != nil {
		args = append(args, *filter.IsCompleted)
		conds = append(conds, fmt.Sprintf("is_completed = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, int(*filter.Priority))
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks", redact.ErrorAttr(err))
		return nil, store.NewStoreError("task", "list", "failed to query tasks", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", redact.ErrorAttr(err))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", redact.ErrorAttr(err))
			return nil, store.NewStoreError("task", "list", "failed to scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", redact.ErrorAttr(err))
		return nil, store.NewStoreError("task", "list", "failed to iterate tasks", MapError(err))
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			redact.ErrorAttr(err),
			slog.Int64("task_id", task.ID))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, is_completed = $3, priority = $4,
			due_date = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		nullString(task.Description),
		task.IsCompleted,
		int(task.Priority),
		nullTime(task.DueDate),
		task.UpdatedAt.UTC(),
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			redact.ErrorAttr(err),
			slog.Int64("task_id", task.ID))
		return store.NewStoreError("task", "update", "failed to update task", MapError(err))
	}

	if err := CheckRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("task not found for update", slog.Int64("task_id", task.ID))
			return store.ErrTaskNotFound
		}
		return store.NewStoreError("task", "update", "failed to check result", err)
	}

	log.Debug("task updated", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			redact.ErrorAttr(err),
			slog.Int64("task_id", id))
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}

	if err := CheckRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
			return store.ErrTaskNotFound
		}
		return store.NewStoreError("task", "delete", "failed to check result", err)
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	return nil
}

// Statistics implements store.TaskStore.Statistics.
func (s *TaskStore) Statistics(ctx context.Context, now time.Time) (*domain.TaskStatistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN NOT is_completed AND due_date IS NOT NULL AND due_date < $1 THEN 1 ELSE 0 END), 0)
		FROM tasks
	`
	var total, completed, overdue int64
	if err := s.db.QueryRowContext(ctx, query, now.UTC()).Scan(&total, &completed, &overdue); err != nil {
		log.Error("failed to aggregate tasks", redact.ErrorAttr(err))
		return nil, store.NewStoreError("task", "statistics", "failed to aggregate tasks", MapError(err))
	}

	rows, err := s.db.QueryContext(ctx, `SELECT priority, COUNT(*) FROM tasks GROUP BY priority`)
	if err != nil {
		log.Error("failed to count tasks by priority", redact.ErrorAttr(err))
		return nil, store.NewStoreError("task", "statistics", "failed to count by priority", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", redact.ErrorAttr(err))
		}
	}()

	byPriority := make(map[domain.Priority]int)
	for rows.Next() {
		var priority, count int64
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, store.NewStoreError("task", "statistics", "failed to scan priority count", err)
		}
		byPriority[domain.Priority(priority)] = int(count)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "statistics", "failed to iterate priority counts", MapError(err))
	}

	return domain.NewTaskStatistics(int(total), int(completed), int(overdue), byPriority), nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		priority    int64
		dueDate     sql.NullTime
	)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.IsCompleted,
		&priority,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}
	if dueDate.Valid {
		due := dueDate.Time.UTC()
		task.DueDate = &due
	}
	task.Priority = domain.Priority(priority)
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()

	return &task, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
