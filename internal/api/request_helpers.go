package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// Query parameters accepted by the list endpoint.
const (
	queryIsCompleted = "isCompleted"
	queryPriority    = "priority"
)

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, paramName)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, pathParam)
	}
	return id, nil
}

// parseTaskFilter reads the optional list filters from the query string.
// Empty parameters are treated as absent.
func parseTaskFilter(r *http.Request) (store.TaskFilter, error) {
	var filter store.TaskFilter
	q := r.URL.Query()

	if raw := q.Get(queryIsCompleted); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: %s=%q", ErrInvalidRequest, queryIsCompleted, raw)
		}
		filter.IsCompleted = &v
	}

	if raw := q.Get(queryPriority); raw != "" {
		p, err := domain.ParsePriority(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: %s: %w", ErrInvalidRequest, queryPriority, err)
		}
		filter.Priority = &p
	}

	return filter, nil
}
