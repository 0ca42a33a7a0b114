package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// IngestionStatus is the lifecycle state of an ingestion run
type IngestionStatus string

const (
	IngestionPending   IngestionStatus = "pending"
	IngestionRunning   IngestionStatus = "running"
	IngestionCompleted IngestionStatus = "completed"
	IngestionFailed    IngestionStatus = "failed"
)

// IngestionTrigger is a request to start an ingestion run
type IngestionTrigger struct {
	SourceID     string `json:"source_id" validate:"required,max=200"`
	ForceReindex bool   `json:"force_reindex"`
}

// IngestionRun tracks one execution of the scrape-validate-chunk-embed
// pipeline for a source
type IngestionRun struct {
	RunID              uuid.UUID       `json:"run_id" db:"run_id"`
	SourceID           string          `json:"source_id" db:"source_id"`
	Status             IngestionStatus `json:"status" db:"status"`
	DocumentsProcessed int             `json:"documents_processed" db:"documents_processed"`
	ChunksCreated      int             `json:"chunks_created" db:"chunks_created"`
	Errors             pq.StringArray  `json:"errors" db:"errors"`
	StartedAt          time.Time       `json:"started_at" db:"started_at"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty" db:"completed_at"`
}

// TableName returns the table name for the IngestionRun model
func (IngestionRun) TableName() string {
	return "ingestion_runs"
}

// NewIngestionRun creates a pending run for the given source
func NewIngestionRun(sourceID string) *IngestionRun {
	return &IngestionRun{
		RunID:     uuid.New(),
		SourceID:  sourceID,
		Status:    IngestionPending,
		StartedAt: time.Now().UTC(),
	}
}

// Finished reports whether the run reached a terminal state
func (r *IngestionRun) Finished() bool {
	return r.Status == IngestionCompleted || r.Status == IngestionFailed
}
