package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	log, logBuf := logger.GetTestLogger(t)

	var seenTraceID string
	handler := NewTraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	require.Len(t, seenTraceID, 32)
	assert.Equal(t, seenTraceID, w.Header().Get(TraceIDHeader))
	logger.AssertLogContains(t, logBuf, "inside handler")
	logger.AssertLogField(t, logBuf, "trace_id", seenTraceID)
}

func TestRecoverer(t *testing.T) {
	log, logBuf := logger.GetTestLogger(t)

	handler := NewTraceMiddleware(log)(Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("database exploded")
	})))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred", body.Message)
	assert.Len(t, body.TraceID, 32)
	assert.NotContains(t, w.Body.String(), "database exploded")

	logger.AssertLogContains(t, logBuf, "recovered from panic")
	logger.AssertLogField(t, logBuf, "status_code", float64(http.StatusInternalServerError))
}

func TestRecovererReraisesAbortHandler(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "success", status: http.StatusOK, wantLevel: "INFO"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx, logBuf := logger.NewLogCaptureContext(t)

			handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte("ok"))
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/tasks", nil).WithContext(ctx)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)

			entries, err := logBuf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "request completed", entries[0]["msg"])
			assert.Equal(t, tc.wantLevel, entries[0]["level"])
			assert.Equal(t, float64(tc.status), entries[0]["status"])
			assert.Equal(t, float64(2), entries[0]["bytes"])
			assert.Equal(t, "/api/tasks", entries[0]["path"])
		})
	}
}

func TestRequestLoggerDefaultsToOK(t *testing.T) {
	ctx, logBuf := logger.NewLogCaptureContext(t)

	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))

	logger.AssertLogField(t, logBuf, "status", float64(http.StatusOK))
}

func TestRecovererKeepsStartedResponse(t *testing.T) {
	log, logBuf := logger.GetTestLogger(t)

	handler := NewTraceMiddleware(log)(Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("partial"))
		panic("stream broke")
	})))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "partial", w.Body.String())
	logger.AssertLogContains(t, logBuf, "recovered from panic")
}
