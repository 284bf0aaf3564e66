package api

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the task and health endpoints on r.
// r is expected to be the router for the /api prefix.
func RegisterRoutes(r chi.Router, tasks *TaskHandler, health *HealthHandler) {
	r.Get("/health", health.Health)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", tasks.ListTasks)
		r.Post("/", tasks.CreateTask)
		r.Get("/statistics", tasks.GetStatistics)

		r.Get("/{id}", tasks.GetTask)
		r.Put("/{id}", tasks.UpdateTask)
		r.Delete("/{id}", tasks.DeleteTask)
		r.Patch("/{id}/complete", tasks.CompleteTask)
	})
}
