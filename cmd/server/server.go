package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

// serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout and releases the database. It returns the
// process exit code.
func (app *application) serve(ctx context.Context) int {
	server := app.newHTTPServer()

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	wait := gfshutdown.GracefulShutdown(ctx, app.config.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				app.logger.Info("shutting down server")
				defer app.cleanup()
				if err := server.Shutdown(ctx); err != nil {
					return fmt.Errorf("server shutdown failed: %w", err)
				}
				return nil
			},
		})

	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			app.logger.Error("server failed", slog.String("error", err.Error()))
			app.cleanup()
			return 1
		}
	case exitCode := <-wait:
		app.logger.Info("server shutdown completed", slog.Int("exit_code", exitCode))
		return exitCode
	}

	return <-wait
}
