package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/astoria-research/astoria/models"
	"github.com/astoria-research/astoria/repositories"
	"github.com/astoria-research/astoria/utils"
)

// ConfiguredSource describes a data source a scraper can ingest
type ConfiguredSource struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// IngestHandler serves the admin-only ingestion endpoints. The scrape and
// embed pipeline itself runs elsewhere; this records and reports runs.
type IngestHandler struct {
	runs   repositories.IngestionRepository
	logger *zap.Logger
}

// NewIngestHandler creates a new IngestHandler
func NewIngestHandler(runs repositories.IngestionRepository, logger *zap.Logger) *IngestHandler {
	return &IngestHandler{
		runs:   runs,
		logger: logger,
	}
}

// HandleTrigger handles POST /api/ingest/trigger
func (h *IngestHandler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	var req models.IngestionTrigger
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	run := models.NewIngestionRun(req.SourceID)
	if err := h.runs.Create(r.Context(), run); err != nil {
		handleError(w, err, h.logger)
		return
	}

	h.logger.Info("ingestion run triggered",
		zap.String("run_id", run.RunID.String()),
		zap.String("source_id", run.SourceID),
		zap.Bool("force_reindex", req.ForceReindex))

	if err := utils.WriteCreated(w, run); err != nil {
		h.logger.Error("failed to write ingestion response", zap.Error(err))
	}
}

// HandleStatus handles GET /api/ingest/status/{run_id}
func (h *IngestHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(chi.URLParam(r, "run_id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid run ID", nil)
		return
	}

	run, err := h.runs.GetByID(r.Context(), runID)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	if err := utils.WriteOK(w, run); err != nil {
		h.logger.Error("failed to write ingestion status response", zap.Error(err))
	}
}

// HandleListSources handles GET /api/ingest/sources.
// Scraper configurations are not persisted yet; the list is static.
func (h *IngestHandler) HandleListSources(w http.ResponseWriter, r *http.Request) {
	sources := []ConfiguredSource{
		{
			ID:     "example-archive",
			Name:   "Example Maritime Archive",
			URL:    "https://example.com",
			Status: "not_configured",
		},
	}

	if err := utils.WriteOK(w, map[string]interface{}{"sources": sources}); err != nil {
		h.logger.Error("failed to write sources response", zap.Error(err))
	}
}
