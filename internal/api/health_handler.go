package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taskboard/taskboard/internal/api/shared"
	"github.com/taskboard/taskboard/internal/platform/logger"
)

// Pinger verifies connectivity to the backing datastore.
// *sql.DB satisfies this interface.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse represents the response body of the health endpoints.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Message  string `json:"message,omitempty"`
}

// HealthHandler handles liveness and readiness requests.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for HealthHandler")
	}

	return &HealthHandler{
		db:     db,
		logger: logger.With(slog.String("component", "health_handler")),
	}
}

// Root handles GET / requests with a plain liveness message.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: "Task Store API is running",
	})
}

// Check handles GET /health requests.
// It verifies the database connection and reports 503 when the check fails.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := h.db.PingContext(r.Context()); err != nil {
		log.Error("database health check failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Database health check failed")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}
