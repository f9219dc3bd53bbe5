// Package storage archives uploaded price list documents so a run's
// original input can be re-inspected or re-ingested later.
package storage

import (
	"context"
	"time"
)

// Metadata describes an archived price list document.
type Metadata struct {
	ContentType  string    `json:"contentType,omitempty"`
	OriginalName string    `json:"originalName,omitempty"`
	SupplierID   string    `json:"supplierId,omitempty"`
	RunID        string    `json:"runId,omitempty"`
	UploadedAt   time.Time `json:"uploadedAt,omitempty"`
}

// FileInfo contains information about an archived document.
type FileInfo struct {
	Key        string    `json:"key"`
	Size       int64     `json:"size"`
	Checksum   string    `json:"checksum"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Metadata   *Metadata `json:"metadata,omitempty"`
}

// Archive defines the document archive operations. Implementations can be
// local filesystem, S3, GCS, etc.
type Archive interface {
	// Put stores content at the given key with optional metadata
	Put(ctx context.Context, key string, content []byte, metadata *Metadata) error

	// Get retrieves content from the given key
	Get(ctx context.Context, key string) ([]byte, error)

	// GetInfo retrieves file information without content
	GetInfo(ctx context.Context, key string) (*FileInfo, error)

	// Exists checks if a file exists at the given key
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes a file at the given key
	Delete(ctx context.Context, key string) error

	// List returns all keys matching the given prefix
	List(ctx context.Context, prefix string) ([]string, error)
}

// DocumentKey builds the canonical archive key for a run's uploaded file.
func DocumentKey(supplierID, runID, fileName string) string {
	return supplierID + "/" + runID + "/" + fileName
}
