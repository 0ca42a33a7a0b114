package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/astoria-research/astoria/models"
	"github.com/astoria-research/astoria/repositories"
	"github.com/astoria-research/astoria/utils"
)

// SourcesHandler serves ingested source documents and their provenance
type SourcesHandler struct {
	documents repositories.DocumentRepository
	logger    *zap.Logger
}

// NewSourcesHandler creates a new SourcesHandler
func NewSourcesHandler(documents repositories.DocumentRepository, logger *zap.Logger) *SourcesHandler {
	return &SourcesHandler{
		documents: documents,
		logger:    logger,
	}
}

// HandleList handles GET /api/sources
func (h *SourcesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := models.DocumentFilter{
		ArchiveName: r.URL.Query().Get("archive"),
		Limit:       queryParamInt(r, "limit", defaultListLimit),
		Offset:      queryParamInt(r, "offset", 0),
	}

	if err := utils.ValidateStruct(filter); err != nil {
		handleError(w, err, h.logger)
		return
	}

	docs, err := h.documents.List(r.Context(), filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	if docs == nil {
		docs = []models.DocumentMeta{}
	}

	if err := utils.WriteOK(w, docs); err != nil {
		h.logger.Error("failed to write sources response", zap.Error(err))
	}
}

// HandleGet handles GET /api/sources/{id}
func (h *SourcesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid document ID", nil)
		return
	}

	doc, err := h.documents.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	if err := utils.WriteOK(w, doc); err != nil {
		h.logger.Error("failed to write source response", zap.Error(err))
	}
}
