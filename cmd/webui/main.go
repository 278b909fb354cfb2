// Package main implements the entry point for the task-tracking web GUI,
// which renders task state and translates user actions into Task Store
// API calls.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskboard/taskboard/internal/client"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/platform/logger"
	"github.com/taskboard/taskboard/internal/webui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start web UI: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return err
	}

	if cfg.WebUI.ListenAddr == "" || cfg.WebUI.APIBaseURL == "" {
		return fmt.Errorf("webui.listen_addr and webui.api_base_url must be configured")
	}

	appLogger.Info("Web UI configuration loaded",
		"listen_addr", cfg.WebUI.ListenAddr,
		"api_base_url", cfg.WebUI.APIBaseURL)

	taskClient := client.New(cfg.WebUI.APIBaseURL, appLogger)

	handler, err := webui.NewHandler(taskClient, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create webui handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Mount("/", handler.Routes())

	return serve(cfg.WebUI.ListenAddr, r, appLogger)
}

// serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully with a timeout.
func serve(addr string, router http.Handler, appLogger *slog.Logger) error {
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Starting web UI", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web UI server failed: %w", err)
	case <-shutdownCh:
		appLogger.Info("Shutting down web UI...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web UI shutdown failed: %w", err)
	}

	appLogger.Info("Web UI shutdown completed")
	return nil
}
