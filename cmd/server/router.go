package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/task-manager-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-manager-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.Recoverer)
	r.Use(cors.AllowAll().Handler)

	taskHandler := api.NewTaskHandler(app.taskService, app.validator, app.logger)
	healthHandler := api.NewHealthHandler(app.now)

	r.Route("/api", func(r chi.Router) {
		api.RegisterRoutes(r, taskHandler, healthHandler)
	})

	return r
}
