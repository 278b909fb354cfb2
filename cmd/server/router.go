package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskboard/taskboard/internal/api"
	apiMiddleware "github.com/taskboard/taskboard/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	healthHandler := api.NewHealthHandler(app.db, app.logger)

	// Register routes
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", taskHandler.CreateTask)
		r.Get("/", taskHandler.ListTasks)
		r.Get("/{id}", taskHandler.GetTask)
		r.Patch("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
	})

	// Liveness and database-checked health endpoints
	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Check)

	return r
}
