package types

import "time"

// PriceListRow is a single extracted row from a supplier price list.
// It is transient: validated, reconciled against the catalog, then discarded.
type PriceListRow struct {
	Size  string  `json:"size"`
	Brand string  `json:"brand"`
	Model string  `json:"model"`
	Cost  float64 `json:"cost"`
}

// InvalidRow carries a rejected row together with every rule it failed.
type InvalidRow struct {
	Row     PriceListRow `json:"row"`
	Reasons []string     `json:"reasons"`
}

// ExtractionResult is the contract with the document-extraction service.
// The service output is authoritative but untrusted: rows still pass the
// ingestion validator before touching the catalog.
type ExtractionResult struct {
	SupplierID string         `json:"supplierId"`
	Rows       []PriceListRow `json:"rows"`
	Total      int            `json:"total"`
}

// FileType represents supported price list file types
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
	FileTypePDF  FileType = "pdf"
)

// MarginType distinguishes percentage markup from a fixed additive amount
type MarginType string

const (
	MarginPercentage MarginType = "percentage"
	MarginFixed      MarginType = "fixed"
)

// IngestionSource represents how an ingestion run was started
type IngestionSource string

const (
	SourceAPI IngestionSource = "api"
	SourceCLI IngestionSource = "cli"
)

// IngestionStatus represents the lifecycle of an ingestion run
type IngestionStatus string

const (
	StatusRunning   IngestionStatus = "running"
	StatusCompleted IngestionStatus = "completed"
	StatusFailed    IngestionStatus = "failed"
)

// IngestionErrorType classifies recorded ingestion errors
type IngestionErrorType string

const (
	ErrorTypeExtraction IngestionErrorType = "extraction"
	ErrorTypeValidation IngestionErrorType = "validation"
	ErrorTypePersist    IngestionErrorType = "persist"
)

// RunStats summarizes an ingestion run for handlers and the CLI
type RunStats struct {
	RunID         string     `json:"runId"`
	SupplierID    string     `json:"supplierId"`
	Status        string     `json:"status"`
	TotalRows     int        `json:"totalRows"`
	PersistedRows int        `json:"persistedRows"`
	InvalidRows   int        `json:"invalidRows"`
	StartedAt     time.Time  `json:"startedAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}

// TimePtr returns a pointer to the given time
func TimePtr(t time.Time) *time.Time {
	return &t
}
