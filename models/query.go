package models

// QueryComplexity classifies how much machinery a query needs
type QueryComplexity string

const (
	ComplexitySimple   QueryComplexity = "simple"
	ComplexityComplex  QueryComplexity = "complex"
	ComplexityResearch QueryComplexity = "research"
)

// QueryRequest is a user's natural language query
type QueryRequest struct {
	Question       string `json:"question" validate:"required,min=3,max=2000"`
	IncludeSQL     bool   `json:"include_sql"`
	IncludeSources bool   `json:"include_sources"`
}

// SourceCitation links a claim in an answer to its source document
type SourceCitation struct {
	DocumentID     string  `json:"document_id"`
	DocumentTitle  string  `json:"document_title"`
	SourceURL      string  `json:"source_url,omitempty"`
	ArchiveName    string  `json:"archive_name,omitempty"`
	ChunkText      string  `json:"chunk_text"`
	RelevanceScore float64 `json:"relevance_score"`
}

// QueryResponse is the answer to a user query
type QueryResponse struct {
	Answer           string           `json:"answer"`
	SQLGenerated     string           `json:"sql_generated,omitempty"`
	Sources          []SourceCitation `json:"sources"`
	Complexity       QueryComplexity  `json:"complexity"`
	ModelUsed        string           `json:"model_used"`
	ProcessingTimeMs int64            `json:"processing_time_ms"`
}
