package ingest

import (
	"fmt"
	"math"
	"strings"

	"github.com/tyredesk/tyre-service/internal/types"
	"github.com/tyredesk/tyre-service/internal/tyres"
)

// ValidateRows partitions extracted rows into valid and invalid sets.
// A row must pass every rule to be valid; a failing row collects one
// human-readable reason per failed rule and is never silently dropped.
func ValidateRows(rows []types.PriceListRow) (valid []types.PriceListRow, invalid []types.InvalidRow) {
	for _, row := range rows {
		reasons := validateRow(row)
		if len(reasons) > 0 {
			invalid = append(invalid, types.InvalidRow{Row: row, Reasons: reasons})
			continue
		}
		valid = append(valid, row)
	}
	return valid, invalid
}

func validateRow(row types.PriceListRow) []string {
	var reasons []string

	size := strings.TrimSpace(row.Size)
	if size == "" {
		reasons = append(reasons, "size is missing")
	} else if !tyres.IsValidSize(size) {
		reasons = append(reasons, fmt.Sprintf("size %q does not match the expected format (e.g. 205/55R16)", row.Size))
	}

	if strings.TrimSpace(row.Brand) == "" {
		reasons = append(reasons, "brand is missing")
	}

	if strings.TrimSpace(row.Model) == "" {
		reasons = append(reasons, "model is missing")
	}

	if math.IsNaN(row.Cost) || math.IsInf(row.Cost, 0) {
		reasons = append(reasons, "cost is not a finite number")
	} else if row.Cost <= 0 {
		reasons = append(reasons, fmt.Sprintf("cost must be greater than zero, got %v", row.Cost))
	}

	return reasons
}
