package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/astoria-research/astoria/config"
	"github.com/astoria-research/astoria/repositories/postgres"
	"github.com/astoria-research/astoria/utils"
)

// HealthResponse is the health check payload
type HealthResponse struct {
	Status            string `json:"status"`
	Version           string `json:"version"`
	Environment       string `json:"environment"`
	DatabaseConnected bool   `json:"database_connected"`
	Timestamp         string `json:"timestamp"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	cfg    *config.Config
	db     *postgres.DB
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(cfg *config.Config, db *postgres.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		cfg:    cfg,
		db:     db,
		logger: logger,
	}
}

// HandleHealth handles GET /api/health.
// Reports connectivity for external dependencies; degraded rather than
// failing when the database is unreachable.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbOK := true
	if err := h.checkDatabase(ctx); err != nil {
		h.logger.Warn("database health check failed", zap.Error(err))
		dbOK = false
	}

	status := "ok"
	if !dbOK {
		status = "degraded"
	}

	response := HealthResponse{
		Status:            status,
		Version:           h.cfg.App.Version,
		Environment:       h.cfg.Environment,
		DatabaseConnected: dbOK,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}

	if err := utils.WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("failed to write health response", zap.Error(err))
	}
}

func (h *HealthHandler) checkDatabase(ctx context.Context) error {
	if h.db == nil {
		return nil
	}
	return h.db.HealthCheck(ctx)
}
