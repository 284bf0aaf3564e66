package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
)

// ErrPanic wraps the value recovered from a panicking handler.
var ErrPanic = errors.New("handler panicked")

// Recoverer converts a panic in any downstream handler into the generic 500
// response. http.ErrAbortHandler is re-raised so net/http can abort the
// connection. When the handler already started its response the panic is
// only logged.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log := logger.FromContextOrDefault(r.Context(), slog.Default())
			log.Error("recovered from panic",
				slog.String("path", r.URL.Path),
				slog.String("method", r.Method),
				slog.String("stack", string(debug.Stack())))

			if ww.Status() != 0 {
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"An unexpected error occurred", fmt.Errorf("%w: %v", ErrPanic, rec))
		}()

		next.ServeHTTP(ww, r)
	})
}
