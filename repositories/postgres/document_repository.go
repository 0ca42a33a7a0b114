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

// DocumentRepository implements repositories.DocumentRepository
type DocumentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *DB, logger *zap.Logger) repositories.DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// List returns document metadata matching the filter, newest first
func (r *DocumentRepository) List(ctx context.Context, filter models.DocumentFilter) ([]models.DocumentMeta, error) {
	query := `
		SELECT id, title, COALESCE(source_url, ''), COALESCE(archive_name, ''),
		       ingested_at, chunk_count, checksum
		FROM documents
	`
	args := []interface{}{}
	if filter.ArchiveName != "" {
		query += " WHERE archive_name = $1"
		args = append(args, filter.ArchiveName)
	}
	query += fmt.Sprintf(" ORDER BY ingested_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.DocumentMeta
	for rows.Next() {
		var doc models.DocumentMeta
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.SourceURL, &doc.ArchiveName,
			&doc.IngestedAt, &doc.ChunkCount, &doc.Checksum); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DocumentMeta, error) {
	query := `
		SELECT id, title, COALESCE(source_url, ''), COALESCE(archive_name, ''),
		       ingested_at, chunk_count, checksum
		FROM documents
		WHERE id = $1
	`

	var doc models.DocumentMeta
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID, &doc.Title, &doc.SourceURL, &doc.ArchiveName,
		&doc.IngestedAt, &doc.ChunkCount, &doc.Checksum,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &doc, nil
}
