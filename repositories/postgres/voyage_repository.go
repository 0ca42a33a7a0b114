package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/astoria-research/astoria/models"
	"github.com/astoria-research/astoria/repositories"
)

// VoyageRepository implements repositories.VoyageRepository
type VoyageRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewVoyageRepository creates a new voyage repository
func NewVoyageRepository(db *DB, logger *zap.Logger) repositories.VoyageRepository {
	return &VoyageRepository{
		db:     db,
		logger: logger,
	}
}

// List returns voyages matching the filter, most recent departures first
func (r *VoyageRepository) List(ctx context.Context, filter models.VoyageFilter) ([]models.VoyageSummary, error) {
	query := `
		SELECT id, ship_name, COALESCE(departure_port, ''), COALESCE(arrival_port, ''),
		       COALESCE(departure_date, ''), COALESCE(arrival_date, '')
		FROM voyages
		WHERE 1=1
	`
	args := []interface{}{}
	if filter.ShipName != "" {
		args = append(args, "%"+filter.ShipName+"%")
		query += fmt.Sprintf(" AND ship_name ILIKE $%d", len(args))
	}
	if filter.Port != "" {
		args = append(args, "%"+filter.Port+"%")
		query += fmt.Sprintf(" AND (departure_port ILIKE $%d OR arrival_port ILIKE $%d)", len(args), len(args))
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		query += fmt.Sprintf(" AND departure_date >= $%d", len(args))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		query += fmt.Sprintf(" AND departure_date <= $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY departure_date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list voyages: %w", err)
	}
	defer rows.Close()

	var voyages []models.VoyageSummary
	for rows.Next() {
		var v models.VoyageSummary
		if err := rows.Scan(&v.ID, &v.ShipName, &v.DeparturePort, &v.ArrivalPort,
			&v.DepartureDate, &v.ArrivalDate); err != nil {
			return nil, fmt.Errorf("failed to scan voyage: %w", err)
		}
		voyages = append(voyages, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate voyages: %w", err)
	}

	return voyages, nil
}
