package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyredesk/tyre-service/internal/extraction"
	"github.com/tyredesk/tyre-service/internal/types"
)

type memRuns struct {
	created   int
	completed bool
	failed    bool
	failMsg   string
	errors    []types.IngestionErrorType
}

func (r *memRuns) CreateRun(_ context.Context, _, _ string, _ types.IngestionSource, _ string) (string, error) {
	r.created++
	return fmt.Sprintf("run-%d", r.created), nil
}

func (r *memRuns) CompleteRun(_ context.Context, _ string, _, _, _ int) error {
	r.completed = true
	return nil
}

func (r *memRuns) FailRun(_ context.Context, _, message string) error {
	r.failed = true
	r.failMsg = message
	return nil
}

func (r *memRuns) RecordError(_ context.Context, _ string, errType types.IngestionErrorType, _ string, _ *types.PriceListRow) error {
	r.errors = append(r.errors, errType)
	return nil
}

type fakeExtractor struct {
	rows []types.PriceListRow
	err  error
	hits int
}

func (e *fakeExtractor) Extract(_ context.Context, req extraction.Request) (*types.ExtractionResult, error) {
	e.hits++
	if e.err != nil {
		return nil, e.err
	}
	return &types.ExtractionResult{SupplierID: req.SupplierID, Rows: e.rows, Total: len(e.rows)}, nil
}

func newTestPipeline(extractor extraction.Extractor, runs Runs) (*Pipeline, *memCatalog) {
	catalog := newMemCatalog()
	reconciler := NewReconciler(catalog, zerolog.Nop())
	return NewPipeline(extractor, reconciler, runs, zerolog.Nop()), catalog
}

func TestPipelineStructuredCSVBypassesExtraction(t *testing.T) {
	extractor := &fakeExtractor{}
	runs := &memRuns{}
	pipeline, _ := newTestPipeline(extractor, runs)

	content := []byte("size,brand,model,cost\n205/55R16,Michelin,Primacy 4,85.50\n195/65R15,Continental,EcoContact 6,72.00\n")
	result, err := pipeline.Run(context.Background(), Input{
		UserID:     "user-1",
		SupplierID: "supplier-1",
		FileName:   "prices.csv",
		Content:    content,
		Source:     types.SourceAPI,
	})
	require.NoError(t, err)

	assert.Zero(t, extractor.hits, "structured CSV should not hit the extraction service")
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.Persisted)
	assert.Empty(t, result.InvalidRows)
	assert.True(t, runs.completed)
	assert.False(t, runs.failed)
}

func TestPipelinePDFUsesExtraction(t *testing.T) {
	extractor := &fakeExtractor{rows: []types.PriceListRow{
		{Size: "225/45R17", Brand: "Pirelli", Model: "P Zero", Cost: 120},
	}}
	runs := &memRuns{}
	pipeline, _ := newTestPipeline(extractor, runs)

	result, err := pipeline.Run(context.Background(), Input{
		UserID:     "user-1",
		SupplierID: "supplier-1",
		FileName:   "prices.pdf",
		MimeType:   "application/pdf",
		Content:    []byte("%PDF-1.4"),
		Source:     types.SourceAPI,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, extractor.hits)
	assert.Equal(t, 1, result.Persisted)
}

func TestPipelineExtractionFailureFailsRun(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("service unavailable")}
	runs := &memRuns{}
	pipeline, _ := newTestPipeline(extractor, runs)

	_, err := pipeline.Run(context.Background(), Input{
		UserID:     "user-1",
		SupplierID: "supplier-1",
		FileName:   "prices.pdf",
		Content:    []byte("%PDF-1.4"),
		Source:     types.SourceAPI,
	})
	require.ErrorIs(t, err, ErrExtraction)

	assert.True(t, runs.failed)
	assert.Contains(t, runs.errors, types.ErrorTypeExtraction)
}

func TestPipelineAllRowsInvalid(t *testing.T) {
	extractor := &fakeExtractor{rows: []types.PriceListRow{
		{Size: "not-a-size", Brand: "Michelin", Model: "Primacy 4", Cost: 85.50},
		{Size: "205/55R16", Brand: "", Model: "Primacy 4", Cost: 0},
	}}
	runs := &memRuns{}
	pipeline, _ := newTestPipeline(extractor, runs)

	_, err := pipeline.Run(context.Background(), Input{
		UserID:     "user-1",
		SupplierID: "supplier-1",
		FileName:   "prices.pdf",
		Content:    []byte("%PDF-1.4"),
		Source:     types.SourceAPI,
	})
	require.ErrorIs(t, err, ErrNoValidData)

	assert.True(t, runs.failed)
	assert.Equal(t, []types.IngestionErrorType{types.ErrorTypeValidation, types.ErrorTypeValidation}, runs.errors)
}

func TestPipelineMixedRowsRecordsInvalid(t *testing.T) {
	extractor := &fakeExtractor{rows: []types.PriceListRow{
		{Size: "205/55R16", Brand: "Michelin", Model: "Primacy 4", Cost: 85.50},
		{Size: "bad", Brand: "Michelin", Model: "Primacy 4", Cost: 85.50},
	}}
	runs := &memRuns{}
	pipeline, _ := newTestPipeline(extractor, runs)

	result, err := pipeline.Run(context.Background(), Input{
		UserID:     "user-1",
		SupplierID: "supplier-1",
		FileName:   "prices.pdf",
		Content:    []byte("%PDF-1.4"),
		Source:     types.SourceAPI,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 1, result.Persisted)
	require.Len(t, result.InvalidRows, 1)
	assert.True(t, runs.completed)
	assert.Contains(t, runs.errors, types.ErrorTypeValidation)
}

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		fileName string
		mimeType string
		want     types.FileType
	}{
		{"prices.csv", "", types.FileTypeCSV},
		{"prices.XLSX", "", types.FileTypeXLSX},
		{"prices.xls", "", types.FileTypeXLSX},
		{"prices.pdf", "", types.FileTypePDF},
		{"upload", "text/csv", types.FileTypeCSV},
		{"upload", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", types.FileTypeXLSX},
		{"scan.jpg", "image/jpeg", types.FileTypePDF},
	}

	for _, tt := range tests {
		t.Run(tt.fileName+"/"+tt.mimeType, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFileType(tt.fileName, tt.mimeType))
		})
	}
}
