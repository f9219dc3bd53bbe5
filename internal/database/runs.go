package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/tyredesk/tyre-service/internal/types"
)

// RunStore tracks ingestion runs and their recorded errors.
type RunStore struct {
	db DBExecutor
}

// NewRunStore creates a run store backed by the given executor.
func NewRunStore(db DBExecutor) *RunStore {
	return &RunStore{db: db}
}

// CreateRun inserts a running ingestion run and returns its ID.
func (s *RunStore) CreateRun(ctx context.Context, userID, supplierID string, source types.IngestionSource, fileName string) (string, error) {
	id := uuid.New().String()
	var name *string
	if fileName != "" {
		name = &fileName
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO ingestion_runs (id, supplier_id, user_id, source, status, file_name, started_at)
		VALUES ($1, $2, $3, $4, 'running', $5, NOW())
	`, id, supplierID, userID, string(source), name)
	if err != nil {
		return "", fmt.Errorf("failed to create ingestion run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a run completed with its final row counts.
func (s *RunStore) CompleteRun(ctx context.Context, runID string, total, persisted, invalid int) error {
	_, err := s.db.Exec(ctx, `
		UPDATE ingestion_runs
		SET status = 'completed',
		    total_rows = $2,
		    persisted_rows = $3,
		    invalid_rows = $4,
		    completed_at = NOW()
		WHERE id = $1
	`, runID, total, persisted, invalid)
	if err != nil {
		return fmt.Errorf("failed to complete run %s: %w", runID, err)
	}
	return nil
}

// FailRun marks a run failed with a message for the caller.
func (s *RunStore) FailRun(ctx context.Context, runID, message string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE ingestion_runs
		SET status = 'failed',
		    message = $2,
		    completed_at = NOW()
		WHERE id = $1
	`, runID, message)
	if err != nil {
		return fmt.Errorf("failed to mark run %s failed: %w", runID, err)
	}
	return nil
}

// RecordError stores a row- or batch-level ingestion error. The offending
// row, when present, is kept as JSON so the UI can render it.
func (s *RunStore) RecordError(ctx context.Context, runID string, errType types.IngestionErrorType, message string, row *types.PriceListRow) error {
	var rowData *string
	if row != nil {
		if data, err := json.Marshal(row); err == nil {
			str := string(data)
			rowData = &str
		}
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO ingestion_errors (id, run_id, error_type, message, row_data, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, uuid.New().String(), runID, string(errType), message, rowData)
	if err != nil {
		return fmt.Errorf("failed to record ingestion error: %w", err)
	}
	return nil
}

// GetRun returns one run owned by the user.
func (s *RunStore) GetRun(ctx context.Context, userID, runID string) (IngestionRun, error) {
	var run IngestionRun
	err := s.db.QueryRow(ctx, `
		SELECT id, supplier_id, user_id, source, status, file_name,
		       total_rows, persisted_rows, invalid_rows, message, started_at, completed_at
		FROM ingestion_runs
		WHERE id = $1 AND user_id = $2
	`, runID, userID).Scan(&run.ID, &run.SupplierID, &run.UserID, &run.Source, &run.Status,
		&run.FileName, &run.TotalRows, &run.PersistedRows, &run.InvalidRows,
		&run.Message, &run.StartedAt, &run.CompletedAt)
	if err != nil {
		return IngestionRun{}, err
	}
	return run, nil
}

// ListRuns returns the user's recent runs, newest first.
func (s *RunStore) ListRuns(ctx context.Context, userID string, limit int) ([]IngestionRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, supplier_id, user_id, source, status, file_name,
		       total_rows, persisted_rows, invalid_rows, message, started_at, completed_at
		FROM ingestion_runs
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []IngestionRun
	for rows.Next() {
		var run IngestionRun
		if err := rows.Scan(&run.ID, &run.SupplierID, &run.UserID, &run.Source, &run.Status,
			&run.FileName, &run.TotalRows, &run.PersistedRows, &run.InvalidRows,
			&run.Message, &run.StartedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListErrors returns the recorded errors for a run owned by the user.
func (s *RunStore) ListErrors(ctx context.Context, userID, runID string) ([]IngestionError, error) {
	rows, err := s.db.Query(ctx, `
		SELECT e.id, e.run_id, e.error_type, e.message, e.row_data, e.created_at
		FROM ingestion_errors e
		JOIN ingestion_runs r ON r.id = e.run_id
		WHERE e.run_id = $1 AND r.user_id = $2
		ORDER BY e.created_at
	`, runID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list run errors: %w", err)
	}
	defer rows.Close()

	var errs []IngestionError
	for rows.Next() {
		var ie IngestionError
		if err := rows.Scan(&ie.ID, &ie.RunID, &ie.ErrorType, &ie.Message, &ie.RowData, &ie.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run error: %w", err)
		}
		errs = append(errs, ie)
	}
	return errs, rows.Err()
}
