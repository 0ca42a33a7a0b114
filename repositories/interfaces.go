// Package repositories defines the persistence interfaces for the research
// database. Implementations live in the postgres subpackage.
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/astoria-research/astoria/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// DocumentRepository provides access to ingested source documents
type DocumentRepository interface {
	List(ctx context.Context, filter models.DocumentFilter) ([]models.DocumentMeta, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.DocumentMeta, error)
}

// ShipRepository provides access to ship records
type ShipRepository interface {
	List(ctx context.Context, filter models.ShipFilter) ([]models.ShipSummary, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ShipSummary, error)
}

// VoyageRepository provides access to voyage records
type VoyageRepository interface {
	List(ctx context.Context, filter models.VoyageFilter) ([]models.VoyageSummary, error)
}

// IngestionRepository tracks ingestion runs
type IngestionRepository interface {
	Create(ctx context.Context, run *models.IngestionRun) error
	GetByID(ctx context.Context, runID uuid.UUID) (*models.IngestionRun, error)
}
