package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/platform/postgres"
	"github.com/taskboard/taskboard/internal/service"
)

// application holds the server's wired dependencies.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	taskService service.TaskService
}

// newApplication wires the store, repository adapter, and service layer
// on top of an established database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	taskStore := postgres.NewPostgresTaskStore(db, logger)
	taskRepo := service.NewTaskRepositoryAdapter(taskStore, db)

	taskService, err := service.NewTaskService(taskRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		taskService: taskService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
