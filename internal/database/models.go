package database

import (
	"time"

	"github.com/tyredesk/tyre-service/internal/types"
)

// TyreSize is a shared catalog entity. Uniqueness is on the canonical
// string form; the numeric components are derivable from it. Immutable
// once created.
type TyreSize struct {
	ID          string    `json:"id"`
	Size        string    `json:"size"` // canonical "W/ARRD", e.g. "205/55R16"
	Width       int       `json:"width"`
	AspectRatio int       `json:"aspectRatio"`
	Diameter    int       `json:"diameter"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TyreBrand is a shared catalog entity, unique case-insensitively on name.
type TyreBrand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// TyreModel is a shared catalog entity, unique case-insensitively on
// (brand, name). The same model name under different brands is distinct.
type TyreModel struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brandId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Supplier is owned by a user account and managed via plain CRUD.
type Supplier struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Contact   *string   `json:"contact,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TyrePrice is a supplier cost for a (size, model) pair. The natural key is
// (supplier_id, tyre_size_id, tyre_model_id); re-ingesting the same pair
// overwrites cost and bumps updated_at. BrandID duplicates the model's
// brand for query convenience and must always agree with it.
type TyrePrice struct {
	ID         string    `json:"id"`
	SupplierID string    `json:"supplierId"`
	TyreSizeID string    `json:"tyreSizeId"`
	TyreModelID string   `json:"tyreModelId"`
	BrandID    string    `json:"brandId"`
	Cost       float64   `json:"cost"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// MarginConfig is a user-scoped pricing rule. Unset scope columns mean
// "matches all" for that dimension. Priority is display ordering only.
type MarginConfig struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	TyreSizeID  *string          `json:"tyreSizeId,omitempty"`
	BrandID     *string          `json:"brandId,omitempty"`
	TyreModelID *string          `json:"tyreModelId,omitempty"`
	MarginType  types.MarginType `json:"marginType"`
	MarginValue float64          `json:"marginValue"`
	Priority    int              `json:"priority"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// IngestionRun tracks one price list ingestion for a supplier.
type IngestionRun struct {
	ID            string     `json:"id"`
	SupplierID    string     `json:"supplierId"`
	UserID        string     `json:"userId"`
	Source        string     `json:"source"` // 'api', 'cli'
	Status        string     `json:"status"` // 'running', 'completed', 'failed'
	FileName      *string    `json:"fileName,omitempty"`
	TotalRows     int        `json:"totalRows"`
	PersistedRows int        `json:"persistedRows"`
	InvalidRows   int        `json:"invalidRows"`
	Message       *string    `json:"message,omitempty"`
	StartedAt     time.Time  `json:"startedAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// IngestionError is a recorded row- or batch-level ingestion failure.
type IngestionError struct {
	ID        string    `json:"id"`
	RunID     string    `json:"runId"`
	ErrorType string    `json:"errorType"` // 'extraction', 'validation', 'persist'
	Message   string    `json:"message"`
	RowData   *string   `json:"rowData,omitempty"` // offending row as JSON
	CreatedAt time.Time `json:"createdAt"`
}
