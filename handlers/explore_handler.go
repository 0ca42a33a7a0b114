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

// ExploreHandler serves direct browsing of the maritime database
type ExploreHandler struct {
	ships   repositories.ShipRepository
	voyages repositories.VoyageRepository
	logger  *zap.Logger
}

// NewExploreHandler creates a new ExploreHandler
func NewExploreHandler(ships repositories.ShipRepository, voyages repositories.VoyageRepository, logger *zap.Logger) *ExploreHandler {
	return &ExploreHandler{
		ships:   ships,
		voyages: voyages,
		logger:  logger,
	}
}

// HandleListShips handles GET /api/explore/ships
func (h *ExploreHandler) HandleListShips(w http.ResponseWriter, r *http.Request) {
	filter := models.ShipFilter{
		Search:  r.URL.Query().Get("search"),
		YearMin: queryParamInt(r, "year_min", 0),
		YearMax: queryParamInt(r, "year_max", 0),
		Limit:   queryParamInt(r, "limit", defaultListLimit),
		Offset:  queryParamInt(r, "offset", 0),
	}

	if err := utils.ValidateStruct(filter); err != nil {
		handleError(w, err, h.logger)
		return
	}

	ships, err := h.ships.List(r.Context(), filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	if ships == nil {
		ships = []models.ShipSummary{}
	}

	if err := utils.WriteOK(w, ships); err != nil {
		h.logger.Error("failed to write ships response", zap.Error(err))
	}
}

// HandleGetShip handles GET /api/explore/ships/{id}
func (h *ExploreHandler) HandleGetShip(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid ship ID", nil)
		return
	}

	ship, err := h.ships.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	if err := utils.WriteOK(w, ship); err != nil {
		h.logger.Error("failed to write ship response", zap.Error(err))
	}
}

// HandleListVoyages handles GET /api/explore/voyages
func (h *ExploreHandler) HandleListVoyages(w http.ResponseWriter, r *http.Request) {
	filter := models.VoyageFilter{
		ShipName: r.URL.Query().Get("ship_name"),
		Port:     r.URL.Query().Get("port"),
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
		Limit:    queryParamInt(r, "limit", defaultListLimit),
		Offset:   queryParamInt(r, "offset", 0),
	}

	if err := utils.ValidateStruct(filter); err != nil {
		handleError(w, err, h.logger)
		return
	}

	voyages, err := h.voyages.List(r.Context(), filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	if voyages == nil {
		voyages = []models.VoyageSummary{}
	}

	if err := utils.WriteOK(w, voyages); err != nil {
		h.logger.Error("failed to write voyages response", zap.Error(err))
	}
}
