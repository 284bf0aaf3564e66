package migrations

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedTask is one example task in seed.yaml.
type SeedTask struct {
	Title       string  `yaml:"title"`
	Description *string `yaml:"description"`
	Priority    string  `yaml:"priority"`
	Completed   bool    `yaml:"completed"`
	// DueInDays is relative to the seeding time; nil means no due date.
	DueInDays *int `yaml:"due_in_days"`
}

type seedFile struct {
	Tasks []SeedTask `yaml:"tasks"`
}

// ParseSeed decodes a seed document.
func ParseSeed(data []byte) ([]SeedTask, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return f.Tasks, nil
}

// SeedTasks returns the embedded example tasks.
func SeedTasks() ([]SeedTask, error) {
	return ParseSeed(seedYAML)
}

// Build converts a seed entry into a task created at now.
func (s SeedTask) Build(now time.Time) (*domain.Task, error) {
	priority := domain.PriorityMedium
	if s.Priority != "" {
		p, err := domain.ParsePriority(s.Priority)
		if err != nil {
			return nil, fmt.Errorf("seed task %q: %w", s.Title, err)
		}
		priority = p
	}

	params := domain.CreateTaskParams{
		Title:       s.Title,
		Description: s.Description,
		Priority:    priority,
	}
	if s.DueInDays != nil {
		due := now.UTC().AddDate(0, 0, *s.DueInDays)
		params.DueDate = &due
	}

	task := domain.NewTask(params, now)
	if s.Completed {
		task.Complete(now)
	}
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("seed task %q: %w", s.Title, err)
	}
	return task, nil
}

// Seed inserts the embedded example tasks through tasks.
func Seed(ctx context.Context, tasks store.TaskStore, now time.Time) (int, error) {
	entries, err := SeedTasks()
	if err != nil {
		return 0, err
	}

	for i, entry := range entries {
		task, err := entry.Build(now)
		if err != nil {
			return i, err
		}
		if err := tasks.Create(ctx, task); err != nil {
			return i, fmt.Errorf("failed to insert seed task %q: %w", entry.Title, err)
		}
	}
	return len(entries), nil
}

// Migrate applies pending migrations. When this call created the tasks table
// and seed is true, the example tasks are inserted through tasks.
func (m *Migrator) Migrate(ctx context.Context, tasks store.TaskStore, seed bool, now time.Time) error {
	applied, err := m.Up(ctx)
	if err != nil {
		return err
	}
	if !seed || !Contains(applied, CreateTasksVersion) {
		return nil
	}

	n, err := Seed(ctx, tasks, now)
	if err != nil {
		return err
	}
	m.logger.Info("seeded example tasks", slog.Int("count", n))
	return nil
}
