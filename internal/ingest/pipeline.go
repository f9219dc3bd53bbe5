package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tyredesk/tyre-service/internal/extraction"
	"github.com/tyredesk/tyre-service/internal/metrics"
	csvparser "github.com/tyredesk/tyre-service/internal/parsers/csv"
	xlsxparser "github.com/tyredesk/tyre-service/internal/parsers/xlsx"
	"github.com/tyredesk/tyre-service/internal/storage"
	"github.com/tyredesk/tyre-service/internal/types"
)

// Runs is the run-bookkeeping surface the pipeline writes to.
// *database.RunStore satisfies it; tests use an in-memory fake.
type Runs interface {
	CreateRun(ctx context.Context, userID, supplierID string, source types.IngestionSource, fileName string) (string, error)
	CompleteRun(ctx context.Context, runID string, total, persisted, invalid int) error
	FailRun(ctx context.Context, runID, message string) error
	RecordError(ctx context.Context, runID string, errType types.IngestionErrorType, message string, row *types.PriceListRow) error
}

// Input is one price list document to ingest. RunID may carry a run record
// created ahead of time (the API does this so it can hand the ID back
// before processing starts); when empty the pipeline creates one.
type Input struct {
	UserID     string
	SupplierID string
	FileName   string
	MimeType   string
	Content    []byte
	Source     types.IngestionSource
	RunID      string
}

// Result summarizes a completed ingestion run.
type Result struct {
	RunID       string             `json:"runId"`
	TotalRows   int                `json:"totalRows"`
	Persisted   int                `json:"persistedRows"`
	InvalidRows []types.InvalidRow `json:"invalidRows,omitempty"`
	Failed      int                `json:"failedRows"`
	Created     struct {
		Sizes  int `json:"sizes"`
		Brands int `json:"brands"`
		Models int `json:"models"`
	} `json:"created"`
}

// Pipeline runs a full ingestion: read the document (structured parse for
// clean CSV/XLSX exports, the extraction service for everything else),
// validate the rows, reconcile them against the catalog and keep the run
// record current throughout.
type Pipeline struct {
	extractor  extraction.Extractor
	reconciler *Reconciler
	runs       Runs
	archive    storage.Archive
	logger     zerolog.Logger
}

// NewPipeline wires an ingestion pipeline.
func NewPipeline(extractor extraction.Extractor, reconciler *Reconciler, runs Runs, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		reconciler: reconciler,
		runs:       runs,
		logger:     logger,
	}
}

// WithArchive makes the pipeline keep a copy of every uploaded document.
// Archival is best effort: a failed write never fails the run.
func (p *Pipeline) WithArchive(archive storage.Archive) *Pipeline {
	p.archive = archive
	return p
}

// Run ingests one document end to end. Batch-fatal conditions (extraction
// failure, zero valid rows) fail the run and return ErrExtraction or
// ErrNoValidData; row-level problems are recorded on the run and never
// abort it.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.RunDuration.Observe(time.Since(start).Seconds())
	}()

	runID := in.RunID
	if runID == "" {
		var err error
		runID, err = p.runs.CreateRun(ctx, in.UserID, in.SupplierID, in.Source, in.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to create ingestion run: %w", err)
		}
	}

	logger := p.logger.With().
		Str("run_id", runID).
		Str("supplier_id", in.SupplierID).
		Str("file", in.FileName).
		Logger()

	if p.archive != nil {
		key := storage.DocumentKey(in.SupplierID, runID, in.FileName)
		err := p.archive.Put(ctx, key, in.Content, &storage.Metadata{
			ContentType:  in.MimeType,
			OriginalName: in.FileName,
			SupplierID:   in.SupplierID,
			RunID:        runID,
			UploadedAt:   time.Now(),
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to archive uploaded document")
		}
	}

	rows, err := p.readRows(ctx, in, logger)
	if err != nil {
		metrics.ExtractionFailures.Inc()
		p.recordError(ctx, runID, types.ErrorTypeExtraction, err.Error(), nil)
		p.failRun(ctx, runID, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	valid, invalid := ValidateRows(rows)
	metrics.RowsRejected.WithLabelValues(string(in.Source)).Add(float64(len(invalid)))
	for i := range invalid {
		row := invalid[i].Row
		p.recordError(ctx, runID, types.ErrorTypeValidation, strings.Join(invalid[i].Reasons, "; "), &row)
	}

	if len(valid) == 0 {
		logger.Warn().Int("total_rows", len(rows)).Msg("No valid rows in price list")
		p.failRun(ctx, runID, ErrNoValidData.Error())
		return nil, ErrNoValidData
	}

	recResult, err := p.reconciler.Reconcile(ctx, in.SupplierID, valid)
	if err != nil {
		p.recordError(ctx, runID, types.ErrorTypePersist, err.Error(), nil)
		p.failRun(ctx, runID, err.Error())
		return nil, err
	}

	for _, failure := range recResult.Failed {
		row := failure.Row
		p.recordError(ctx, runID, types.ErrorTypePersist, failure.Err.Error(), &row)
	}
	metrics.PersistFailures.Add(float64(len(recResult.Failed)))
	metrics.RowsPersisted.WithLabelValues(string(in.Source)).Add(float64(recResult.Persisted))
	metrics.CatalogEntitiesCreated.WithLabelValues("size").Add(float64(recResult.SizesCreated))
	metrics.CatalogEntitiesCreated.WithLabelValues("brand").Add(float64(recResult.BrandsCreated))
	metrics.CatalogEntitiesCreated.WithLabelValues("model").Add(float64(recResult.ModelsCreated))

	if err := p.runs.CompleteRun(ctx, runID, len(rows), recResult.Persisted, len(invalid)+len(recResult.Failed)); err != nil {
		logger.Error().Err(err).Msg("Failed to mark ingestion run completed")
	}

	result := &Result{
		RunID:       runID,
		TotalRows:   len(rows),
		Persisted:   recResult.Persisted,
		InvalidRows: invalid,
		Failed:      len(recResult.Failed),
	}
	result.Created.Sizes = recResult.SizesCreated
	result.Created.Brands = recResult.BrandsCreated
	result.Created.Models = recResult.ModelsCreated

	logger.Info().
		Int("total", result.TotalRows).
		Int("persisted", result.Persisted).
		Int("invalid", len(invalid)).
		Int("failed", result.Failed).
		Dur("duration", time.Since(start)).
		Msg("Ingestion run completed")

	return result, nil
}

// readRows turns the uploaded document into raw price list rows. Clean
// CSV/XLSX exports are parsed locally; anything else goes through the
// extraction service.
func (p *Pipeline) readRows(ctx context.Context, in Input, logger zerolog.Logger) ([]types.PriceListRow, error) {
	switch DetectFileType(in.FileName, in.MimeType) {
	case types.FileTypeCSV:
		if csvparser.IsStructured(in.Content) {
			logger.Debug().Msg("Parsing structured CSV locally")
			return csvparser.Parse(in.Content)
		}
	case types.FileTypeXLSX:
		if xlsxparser.IsStructured(in.Content) {
			logger.Debug().Msg("Parsing structured XLSX locally")
			return xlsxparser.Parse(in.Content)
		}
	}

	logger.Debug().Msg("Sending document to extraction service")
	res, err := p.extractor.Extract(ctx, extraction.Request{
		File:       in.Content,
		FileName:   in.FileName,
		SupplierID: in.SupplierID,
		MimeType:   in.MimeType,
	})
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// DetectFileType classifies an upload by extension, falling back to the
// declared MIME type.
func DetectFileType(fileName, mimeType string) types.FileType {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return types.FileTypeCSV
	case ".xlsx", ".xls":
		return types.FileTypeXLSX
	case ".pdf":
		return types.FileTypePDF
	}

	switch mimeType {
	case "text/csv":
		return types.FileTypeCSV
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "application/vnd.ms-excel":
		return types.FileTypeXLSX
	default:
		return types.FileTypePDF
	}
}

func (p *Pipeline) recordError(ctx context.Context, runID string, errType types.IngestionErrorType, message string, row *types.PriceListRow) {
	if err := p.runs.RecordError(ctx, runID, errType, message, row); err != nil {
		p.logger.Error().Err(err).Str("run_id", runID).Msg("Failed to record ingestion error")
	}
}

func (p *Pipeline) failRun(ctx context.Context, runID, message string) {
	if err := p.runs.FailRun(ctx, runID, message); err != nil {
		p.logger.Error().Err(err).Str("run_id", runID).Msg("Failed to mark ingestion run failed")
	}
}
