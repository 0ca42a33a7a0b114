package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentMeta is metadata about an ingested source document
type DocumentMeta struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	SourceURL   string    `json:"source_url,omitempty" db:"source_url"`
	ArchiveName string    `json:"archive_name,omitempty" db:"archive_name"`
	IngestedAt  time.Time `json:"ingested_at" db:"ingested_at"`
	ChunkCount  int       `json:"chunk_count" db:"chunk_count"`
	Checksum    string    `json:"checksum" db:"checksum"`
}

// TableName returns the table name for the DocumentMeta model
func (DocumentMeta) TableName() string {
	return "documents"
}

// DocumentFilter narrows document listings
type DocumentFilter struct {
	ArchiveName string `validate:"max=200"`
	Limit       int    `validate:"gte=1,lte=200"`
	Offset      int    `validate:"gte=0"`
}
