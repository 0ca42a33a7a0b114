package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/astoria-research/astoria/repositories"
	"github.com/astoria-research/astoria/utils"
)

// handleError maps domain errors to HTTP responses. Auth errors never reach
// here; the middleware answers 401/403 before a handler runs.
func handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var vErr *utils.ValidationError

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		if wErr := utils.WriteNotFound(w, err.Error()); wErr != nil {
			logger.Error("failed to write not found response", zap.Error(wErr))
		}

	case errors.As(err, &vErr):
		if wErr := utils.WriteBadRequest(w, vErr.Error(), utils.ValidationDetails(err)); wErr != nil {
			logger.Error("failed to write bad request response", zap.Error(wErr))
		}

	default:
		logger.Error("request failed", zap.Error(err))
		if wErr := utils.WriteInternalServerError(w, ""); wErr != nil {
			logger.Error("failed to write error response", zap.Error(wErr))
		}
	}
}
