package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	desc := "write the release notes"
	due := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

	task := NewTask(CreateTaskParams{
		Title:       "Release",
		Description: &desc,
		Priority:    PriorityHigh,
		DueDate:     &due,
	}, now)

	if task.ID != 0 {
		t.Errorf("Expected unassigned ID, got %d", task.ID)
	}
	if task.IsCompleted {
		t.Error("Expected new task to be incomplete")
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Errorf("Expected CreatedAt == UpdatedAt, got %v and %v", task.CreatedAt, task.UpdatedAt)
	}
	if task.CreatedAt.Location() != time.UTC {
		t.Errorf("Expected timestamps in UTC, got %v", task.CreatedAt.Location())
	}
	if task.Priority != PriorityHigh {
		t.Errorf("Expected priority High, got %s", task.Priority)
	}
	if err := task.Validate(); err != nil {
		t.Errorf("Expected valid task, got %v", err)
	}
}

func TestTaskApplyUpdate(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, time.January, 1, 8, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)
	desc := "original"
	due := created.AddDate(0, 0, 3)

	base := func() *Task {
		d, dd := desc, due
		return &Task{
			ID: 7, Title: "Original", Description: &d, Priority: PriorityLow,
			DueDate: &dd, CreatedAt: created, UpdatedAt: created,
		}
	}

	t.Run("only set fields change", func(t *testing.T) {
		task := base()
		task.ApplyUpdate(UpdateTaskParams{Priority: Some(PriorityUrgent)}, later)

		if task.Priority != PriorityUrgent {
			t.Errorf("Expected priority Urgent, got %s", task.Priority)
		}
		if task.Title != "Original" || *task.Description != "original" || task.IsCompleted {
			t.Errorf("Expected other fields untouched, got %+v", task)
		}
		if !task.DueDate.Equal(due) {
			t.Errorf("Expected due date unchanged, got %v", task.DueDate)
		}
		if !task.UpdatedAt.Equal(later) {
			t.Errorf("Expected UpdatedAt %v, got %v", later, task.UpdatedAt)
		}
	})

	t.Run("null clears optional fields", func(t *testing.T) {
		task := base()
		task.ApplyUpdate(UpdateTaskParams{
			Description: Null[string](),
			DueDate:     Null[time.Time](),
		}, later)

		if task.Description != nil || task.DueDate != nil {
			t.Errorf("Expected description and due date cleared, got %v %v", task.Description, task.DueDate)
		}
	})

	t.Run("empty update still refreshes UpdatedAt", func(t *testing.T) {
		task := base()
		task.ApplyUpdate(UpdateTaskParams{}, later)
		if !task.UpdatedAt.Equal(later) {
			t.Errorf("Expected UpdatedAt %v, got %v", later, task.UpdatedAt)
		}
	})

	t.Run("UpdatedAt never precedes CreatedAt", func(t *testing.T) {
		task := base()
		task.ApplyUpdate(UpdateTaskParams{}, created.Add(-time.Minute))
		if task.UpdatedAt.Before(task.CreatedAt) {
			t.Errorf("Expected UpdatedAt >= CreatedAt, got %v < %v", task.UpdatedAt, task.CreatedAt)
		}
	})
}

func TestTaskComplete(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{Title: "x", Priority: PriorityMedium, CreatedAt: created, UpdatedAt: created}

	first := created.Add(time.Minute)
	task.Complete(first)
	second := first.Add(time.Minute)
	task.Complete(second)

	if !task.IsCompleted {
		t.Error("Expected task to stay completed")
	}
	if !task.UpdatedAt.Equal(second) {
		t.Errorf("Expected UpdatedAt to advance to %v, got %v", second, task.UpdatedAt)
	}
}

func TestTaskIsOverdue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{}, false},
		{"due in the past", Task{DueDate: &past}, true},
		{"due exactly now", Task{DueDate: &now}, false},
		{"due in the future", Task{DueDate: &future}, false},
		{"completed past due", Task{DueDate: &past, IsCompleted: true}, false},
	}
	for _, tc := range tests {
		if got := tc.task.IsOverdue(now); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	long := strings.Repeat("é", DescriptionMaxLength+1)
	valid := Task{Title: "ok", Priority: PriorityLow, CreatedAt: now, UpdatedAt: now}

	cases := map[string]func(*Task){
		"empty title":            func(t *Task) { t.Title = "" },
		"blank title":            func(t *Task) { t.Title = "  \t" },
		"long title":             func(t *Task) { t.Title = strings.Repeat("a", TitleMaxLength+1) },
		"long description":       func(t *Task) { t.Description = &long },
		"invalid priority":       func(t *Task) { t.Priority = Priority(12) },
		"updated before created": func(t *Task) { t.UpdatedAt = now.Add(-time.Hour) },
	}
	for name, mutate := range cases {
		task := valid
		mutate(&task)
		if err := task.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}

	title := strings.Repeat("ü", TitleMaxLength)
	valid.Title = title
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected 200 multi-byte characters to be valid, got %v", err)
	}
}

func TestTaskStatistics(t *testing.T) {
	t.Parallel()

	stats := NewTaskStatistics(3, 1, 1, map[Priority]int{PriorityHigh: 2, PriorityMedium: 1, PriorityLow: 0})

	if stats.PendingTasks != 2 {
		t.Errorf("Expected 2 pending tasks, got %d", stats.PendingTasks)
	}
	named := stats.ByPriorityName()
	if len(named) != 2 || named["High"] != 2 || named["Medium"] != 1 {
		t.Errorf("Expected {High:2 Medium:1}, got %v", named)
	}
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{
		{Property: "Title", Rule: RuleRequired, Message: "Title is required"},
		{Property: "DueDate", Rule: RulePastDate, Message: "Due date cannot be in the past"},
	}
	var err error = errs

	if !errors.Is(err, ErrValidation) {
		t.Error("Expected ValidationErrors to match ErrValidation")
	}
	var target ValidationErrors
	if !errors.As(err, &target) || len(target) != 2 {
		t.Errorf("Expected errors.As to recover both violations, got %v", target)
	}
	if got := errs.Properties(); got[0] != "Title" || got[1] != "DueDate" {
		t.Errorf("Expected ordered properties, got %v", got)
	}
}
