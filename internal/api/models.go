package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// Accepted dueDate layouts, tried in order. Layouts without a zone are UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DueDate is a timestamp that also accepts zone-less date-times and plain dates.
type DueDate time.Time

// UnmarshalJSON implements json.Unmarshaler.
func (d *DueDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("dueDate must be a string: %w", err)
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = DueDate(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("dueDate %q is not a valid date", s)
}

// Time returns the due date as a time.Time.
func (d DueDate) Time() time.Time {
	return time.Time(d)
}

// CreateTaskRequest defines the payload for the create endpoint.
type CreateTaskRequest struct {
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Priority    *domain.Priority `json:"priority"`
	DueDate     *DueDate         `json:"dueDate"`
}

// Params converts the request to service input. A missing priority defaults
// to Medium.
func (req CreateTaskRequest) Params() domain.CreateTaskParams {
	params := domain.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.PriorityMedium,
	}
	if req.Priority != nil {
		params.Priority = *req.Priority
	}
	if req.DueDate != nil {
		due := req.DueDate.Time()
		params.DueDate = &due
	}
	return params
}

// UpdateTaskRequest defines the payload for the update endpoint.
// Absent fields keep their stored value.
type UpdateTaskRequest struct {
	Title       domain.Optional[string]          `json:"title"`
	Description domain.Optional[string]          `json:"description"`
	IsCompleted domain.Optional[bool]            `json:"isCompleted"`
	Priority    domain.Optional[domain.Priority] `json:"priority"`
	DueDate     domain.Optional[DueDate]         `json:"dueDate"`
}

// Params converts the request to service input.
func (req UpdateTaskRequest) Params() domain.UpdateTaskParams {
	params := domain.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		Priority:    req.Priority,
	}
	switch {
	case req.DueDate.HasValue():
		params.DueDate = domain.Some(req.DueDate.Value.Time())
	case req.DueDate.Set:
		params.DueDate = domain.Null[time.Time]()
	}
	return params
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	IsCompleted bool            `json:"isCompleted"`
	Priority    domain.Priority `json:"priority"`
	DueDate     *time.Time      `json:"dueDate"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// StatisticsResponse is the wire form of the task statistics.
type StatisticsResponse struct {
	TotalTasks      int            `json:"totalTasks"`
	CompletedTasks  int            `json:"completedTasks"`
	PendingTasks    int            `json:"pendingTasks"`
	OverdueTasks    int            `json:"overdueTasks"`
	TasksByPriority map[string]int `json:"tasksByPriority"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

// taskToResponse copies every task field into its wire form.
func taskToResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt.UTC(),
		UpdatedAt:   task.UpdatedAt.UTC(),
	}
	if task.DueDate != nil {
		due := task.DueDate.UTC()
		resp.DueDate = &due
	}
	return resp
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

func statisticsToResponse(stats *domain.TaskStatistics) StatisticsResponse {
	return StatisticsResponse{
		TotalTasks:      stats.TotalTasks,
		CompletedTasks:  stats.CompletedTasks,
		PendingTasks:    stats.PendingTasks,
		OverdueTasks:    stats.OverdueTasks,
		TasksByPriority: stats.ByPriorityName(),
	}
}
