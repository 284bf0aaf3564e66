package api

import (
	"net/http"
	"time"

	"github.com/phrazzld/task-manager-api/internal/api/shared"
)

// Values reported by the health endpoint.
const (
	HealthStatus   = "Healthy"
	ServiceName    = "Task Manager API"
	ServiceVersion = "1.0.0"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a HealthHandler. A nil clock uses time.Now.
func NewHealthHandler(now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now}
}

// Health handles GET /api/health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    HealthStatus,
		Timestamp: h.now().UTC(),
		Service:   ServiceName,
		Version:   ServiceVersion,
	})
}
