package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/redact"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/validation"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	validator   *validation.Validator
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(
	taskService service.TaskService,
	validator *validation.Validator,
	logger *slog.Logger,
) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if validator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("validator cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		validator:   validator,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /api/tasks requests.
// Optional isCompleted and priority query parameters filter the result.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	filter, err := parseTaskFilter(r)
	if err != nil {
		log.Warn("invalid task filter", redact.ErrorAttr(err))
		HandleAPIError(w, r, err, "Invalid query parameter")
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		h.handleTaskError(w, r, id, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CreateTask handles POST /api/tasks requests.
// It responds 201 with the stored task and its location.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid request format", redact.ErrorAttr(err))
		HandleAPIError(w, r, fmt.Errorf("%w: %w", ErrInvalidRequest, err), "")
		return
	}

	params := req.Params()
	if err := h.validator.ValidateCreate(params); err != nil {
		log.Debug("create payload rejected", redact.ErrorAttr(err))
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// UpdateTask handles PUT /api/tasks/{id} requests.
// Only the fields present in the body are changed.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid request format", redact.ErrorAttr(err), slog.Int64("task_id", id))
		HandleAPIError(w, r, fmt.Errorf("%w: %w", ErrInvalidRequest, err), "")
		return
	}

	params := req.Params()
	if err := h.validator.ValidateUpdate(params); err != nil {
		log.Debug("update payload rejected", redact.ErrorAttr(err), slog.Int64("task_id", id))
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, params)
	if err != nil {
		h.handleTaskError(w, r, id, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		h.handleTaskError(w, r, id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CompleteTask handles PATCH /api/tasks/{id}/complete requests.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), id)
	if err != nil {
		h.handleTaskError(w, r, id, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// GetStatistics handles GET /api/tasks/statistics requests.
func (h *TaskHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.taskService.GetStatistics(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, statisticsToResponse(stats))
}

// pathID extracts the task ID and writes a 400 when it is malformed.
func (h *TaskHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := getPathID(r, "id")
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Warn("invalid task ID", redact.ErrorAttr(err))
		HandleAPIError(w, r, err, MessageInvalidTaskID)
		return 0, false
	}
	return id, true
}

// handleTaskError names the ID in not-found responses.
func (h *TaskHandler) handleTaskError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	if errors.Is(err, service.ErrTaskNotFound) {
		HandleAPIError(w, r, err, fmt.Sprintf("Task with ID %d not found", id))
		return
	}
	HandleAPIError(w, r, err, "")
}
