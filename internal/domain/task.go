package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits shared by the validator, the entity checks and the schema.
const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 1000
)

// Task is a titled unit of work with a completion flag, a priority and an
// optional due date.
type Task struct {
	ID          int64
	Title       string
	Description *string
	IsCompleted bool
	Priority    Priority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTaskParams is the payload of a create request.
type CreateTaskParams struct {
	Title       string
	Description *string
	Priority    Priority
	DueDate     *time.Time
}

// UpdateTaskParams is the payload of a partial update. Only fields that are
// set overwrite the stored values.
type UpdateTaskParams struct {
	Title       Optional[string]
	Description Optional[string]
	IsCompleted Optional[bool]
	Priority    Optional[Priority]
	DueDate     Optional[time.Time]
}

// NewTask builds a task from a create payload. The task starts incomplete and
// both timestamps are set to now. The ID is assigned by the store.
func NewTask(p CreateTaskParams, now time.Time) *Task {
	now = now.UTC()
	return &Task{
		Title:       p.Title,
		Description: p.Description,
		IsCompleted: false,
		Priority:    p.Priority,
		DueDate:     utcPtr(p.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ApplyUpdate overwrites the fields that are set in p and refreshes UpdatedAt.
// Null description and due date clear the stored value.
func (t *Task) ApplyUpdate(p UpdateTaskParams, now time.Time) {
	if p.Title.HasValue() {
		t.Title = p.Title.Value
	}
	if p.Description.Set {
		t.Description = p.Description.Ptr()
	}
	if p.IsCompleted.HasValue() {
		t.IsCompleted = p.IsCompleted.Value
	}
	if p.Priority.HasValue() {
		t.Priority = p.Priority.Value
	}
	if p.DueDate.Set {
		t.DueDate = utcPtr(p.DueDate.Ptr())
	}
	t.touch(now)
}

// Complete marks the task done. Completing a completed task only advances
// UpdatedAt.
func (t *Task) Complete(now time.Time) {
	t.IsCompleted = true
	t.touch(now)
}

// IsOverdue reports whether the task is incomplete and its due date is
// strictly before now.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.IsCompleted && t.DueDate != nil && t.DueDate.Before(now)
}

// Validate checks the invariants a persisted task must hold.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if utf8.RuneCountInString(t.Title) > TitleMaxLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrValidation, TitleMaxLength)
	}
	if t.Description != nil && utf8.RuneCountInString(*t.Description) > DescriptionMaxLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrValidation, DescriptionMaxLength)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidPriority)
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return fmt.Errorf("%w: updated_at precedes created_at", ErrValidation)
	}
	return nil
}

// touch refreshes UpdatedAt without letting it fall behind CreatedAt.
func (t *Task) touch(now time.Time) {
	now = now.UTC()
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
