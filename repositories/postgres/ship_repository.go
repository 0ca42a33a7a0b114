package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/astoria-research/astoria/models"
	"github.com/astoria-research/astoria/repositories"
)

// ShipRepository implements repositories.ShipRepository
type ShipRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewShipRepository creates a new ship repository
func NewShipRepository(db *DB, logger *zap.Logger) repositories.ShipRepository {
	return &ShipRepository{
		db:     db,
		logger: logger,
	}
}

// List returns ships matching the filter, ordered by name
func (r *ShipRepository) List(ctx context.Context, filter models.ShipFilter) ([]models.ShipSummary, error) {
	query := `
		SELECT id, name, COALESCE(type, ''), COALESCE(year_built, 0), COALESCE(port_of_registry, '')
		FROM ships
		WHERE 1=1
	`
	args := []interface{}{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.YearMin > 0 {
		args = append(args, filter.YearMin)
		query += fmt.Sprintf(" AND year_built >= $%d", len(args))
	}
	if filter.YearMax > 0 {
		args = append(args, filter.YearMax)
		query += fmt.Sprintf(" AND year_built <= $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ships: %w", err)
	}
	defer rows.Close()

	var ships []models.ShipSummary
	for rows.Next() {
		var ship models.ShipSummary
		if err := rows.Scan(&ship.ID, &ship.Name, &ship.Type, &ship.YearBuilt, &ship.PortOfRegistry); err != nil {
			return nil, fmt.Errorf("failed to scan ship: %w", err)
		}
		ships = append(ships, ship)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ships: %w", err)
	}

	return ships, nil
}

// GetByID retrieves a ship by ID
func (r *ShipRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ShipSummary, error) {
	query := `
		SELECT id, name, COALESCE(type, ''), COALESCE(year_built, 0), COALESCE(port_of_registry, '')
		FROM ships
		WHERE id = $1
	`

	var ship models.ShipSummary
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ship.ID, &ship.Name, &ship.Type, &ship.YearBuilt, &ship.PortOfRegistry,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ship: %w", err)
	}

	return &ship, nil
}
