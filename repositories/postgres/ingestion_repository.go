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

// IngestionRepository implements repositories.IngestionRepository
type IngestionRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewIngestionRepository creates a new ingestion repository
func NewIngestionRepository(db *DB, logger *zap.Logger) repositories.IngestionRepository {
	return &IngestionRepository{
		db:     db,
		logger: logger,
	}
}

// Create records a new ingestion run
func (r *IngestionRepository) Create(ctx context.Context, run *models.IngestionRun) error {
	query := `
		INSERT INTO ingestion_runs (run_id, source_id, status, documents_processed,
		                            chunks_created, errors, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.RunID,
		run.SourceID,
		run.Status,
		run.DocumentsProcessed,
		run.ChunksCreated,
		run.Errors,
		run.StartedAt,
		run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ingestion run: %w", err)
	}

	r.logger.Debug("ingestion run created",
		zap.String("run_id", run.RunID.String()),
		zap.String("source_id", run.SourceID))
	return nil
}

// GetByID retrieves an ingestion run by ID
func (r *IngestionRepository) GetByID(ctx context.Context, runID uuid.UUID) (*models.IngestionRun, error) {
	query := `
		SELECT run_id, source_id, status, documents_processed, chunks_created,
		       errors, started_at, completed_at
		FROM ingestion_runs
		WHERE run_id = $1
	`

	var run models.IngestionRun
	err := r.db.QueryRowContext(ctx, query, runID).Scan(
		&run.RunID,
		&run.SourceID,
		&run.Status,
		&run.DocumentsProcessed,
		&run.ChunksCreated,
		&run.Errors,
		&run.StartedAt,
		&run.CompletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingestion run: %w", err)
	}

	return &run, nil
}
