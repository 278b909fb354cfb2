// Package main implements the entry point for the Task Store API server,
// the single source of truth for persistent task records.
package main

import (
	"context"
	"log"

	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		app.logger.Error("Server exited with error", "error", err)
		app.cleanup()
		log.Fatalf("Server exited with error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components:
// logging, the database connection, migrations, and the service layer.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, err
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Failed to close database after migration failure", "error", closeErr)
		}
		return nil, err
	}

	return newApplication(cfg, appLogger, db)
}
