package ingest

import "errors"

// Batch-fatal error kinds. Row-level failures are never fatal: they are
// logged, recorded and skipped while the batch continues.
var (
	// ErrExtraction: the extraction service was unreachable, returned a
	// malformed response, or produced zero parseable rows.
	ErrExtraction = errors.New("price list extraction failed")

	// ErrNoValidData: the document was read but every extracted row failed
	// validation. Distinct from ErrExtraction so the caller can tell the
	// user the file was legible but contained nothing usable.
	ErrNoValidData = errors.New("price list contained no valid rows")
)
