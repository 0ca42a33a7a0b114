package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/astoria-research/astoria/internal/promptguard"
	"github.com/astoria-research/astoria/middleware"
	"github.com/astoria-research/astoria/models"
	"github.com/astoria-research/astoria/utils"
)

// QueryHandler handles natural language queries against the maritime
// database. The RAG pipeline is not wired yet; responses confirm the
// pipeline shape.
type QueryHandler struct {
	logger *zap.Logger
}

// NewQueryHandler creates a new QueryHandler
func NewQueryHandler(logger *zap.Logger) *QueryHandler {
	return &QueryHandler{logger: logger}
}

// HandleSubmit handles POST /api/query
func (h *QueryHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	if detections := promptguard.Screen(req.Question); len(detections) > 0 {
		threats := make([]string, 0, len(detections))
		for _, d := range detections {
			threats = append(threats, string(d.Type))
		}
		h.logger.Warn("question rejected by prompt guard",
			zap.String("subject", identity.SubjectID),
			zap.Strings("threats", threats))
		_ = utils.WriteBadRequest(w, "Question contains disallowed content", nil)
		return
	}

	h.logger.Info("query received",
		zap.String("subject", identity.SubjectID),
		zap.Int("question_length", len(req.Question)))

	response := models.QueryResponse{
		Answer: fmt.Sprintf(
			"Query received: %q. Authenticated as %s. The full retrieval pipeline is not yet connected.",
			req.Question, identity.Email,
		),
		Sources:          []models.SourceCitation{},
		Complexity:       models.ComplexitySimple,
		ModelUsed:        "placeholder",
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
	if req.IncludeSQL {
		response.SQLGenerated = "SELECT 'placeholder';"
	}

	if err := utils.WriteOK(w, response); err != nil {
		h.logger.Error("failed to write query response", zap.Error(err))
	}
}
