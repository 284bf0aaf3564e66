package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"service not found", service.ErrTaskNotFound, http.StatusNotFound},
		{"store not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"validation", domain.ValidationErrors{{Property: "Title"}}, http.StatusBadRequest},
		{"invalid id", fmt.Errorf("%w: abc", domain.ErrInvalidID), http.StatusBadRequest},
		{"invalid request", fmt.Errorf("%w: eof", ErrInvalidRequest), http.StatusBadRequest},
		{"invalid entity", store.NewStoreError("task", "create", "bad", store.ErrInvalidEntity), http.StatusBadRequest},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"wrapped service error", service.NewTaskServiceError("list_tasks", "x", errors.New("boom")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"not found", service.ErrTaskNotFound, "Task not found"},
		{"validation", domain.ValidationErrors{{Property: "Title"}}, "Validation failed"},
		{"invalid id", domain.ErrInvalidID, "Invalid task ID"},
		{"invalid request", ErrInvalidRequest, "Invalid request format"},
		{"internal details", errors.New("pq: relation tasks does not exist"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Run("custom message for client errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleAPIError(w, httptest.NewRequest(http.MethodGet, "/", nil), service.ErrTaskNotFound, "Task with ID 3 not found")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Task with ID 3 not found"}`, w.Body.String())
	})

	t.Run("custom message ignored for server errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleAPIError(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"), "boom happened")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"An unexpected error occurred"}`, w.Body.String())
	})

	t.Run("validation errors keep their order", func(t *testing.T) {
		verrs := domain.ValidationErrors{
			{Property: "Title", Rule: domain.RuleRequired, Message: "Title is required"},
			{Property: "DueDate", Rule: domain.RulePastDate, Message: "Due date cannot be in the past"},
		}
		w := httptest.NewRecorder()
		HandleAPIError(w, httptest.NewRequest(http.MethodPost, "/", nil), verrs, "")

		require.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Validation failed", body["message"])
		assert.Equal(t, []any{
			map[string]any{"property": "Title", "error": "Title is required"},
			map[string]any{"property": "DueDate", "error": "Due date cannot be in the past"},
		}, body["errors"])
	})
}
