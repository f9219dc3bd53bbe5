// Package csv parses structured CSV price lists into extraction rows,
// bypassing the language-model service when a supplier exports clean data.
package csv

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/tyredesk/tyre-service/internal/parsers/charset"
	"github.com/tyredesk/tyre-service/internal/types"
)

// headerAliases maps the column names suppliers actually use to our fields.
var headerAliases = map[string]string{
	"size":      "size",
	"dimension": "size",
	"tyre size": "size",
	"brand":     "brand",
	"make":      "brand",
	"model":     "model",
	"pattern":   "model",
	"cost":      "cost",
	"price":     "cost",
	"net":       "cost",
	"net price": "cost",
}

// Parse decodes and parses CSV content with size/brand/model/cost columns.
// The header row is required: without recognizable columns the file is not
// a structured price list and the caller should fall back to extraction.
func Parse(content []byte) ([]types.PriceListRow, error) {
	enc := charset.DetectEncoding(content)
	decoded, err := charset.Decode(content, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode CSV content: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(decoded))
	reader.Comma = DetectDelimiter(decoded)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV has no data rows")
	}

	columns, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	var rows []types.PriceListRow
	for _, record := range records[1:] {
		row, ok := extractRow(record, columns)
		if !ok {
			continue // blank line
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// IsStructured reports whether the content looks like a price list this
// parser can handle, without fully parsing it.
func IsStructured(content []byte) bool {
	enc := charset.DetectEncoding(content)
	decoded, err := charset.Decode(content, enc)
	if err != nil {
		return false
	}
	lines := strings.SplitN(decoded, "\n", 2)
	if len(lines) == 0 {
		return false
	}
	fields := strings.FieldsFunc(lines[0], func(r rune) bool {
		return r == ',' || r == ';' || r == '\t'
	})
	_, err = mapColumns(fields)
	return err == nil
}

// mapColumns resolves header names to field indices. All four fields must
// be present.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		if field, ok := headerAliases[key]; ok {
			if _, seen := columns[field]; !seen {
				columns[field] = i
			}
		}
	}

	for _, field := range []string{"size", "brand", "model", "cost"} {
		if _, ok := columns[field]; !ok {
			return nil, fmt.Errorf("CSV header missing %s column", field)
		}
	}
	return columns, nil
}

func extractRow(record []string, columns map[string]int) (types.PriceListRow, bool) {
	get := func(field string) string {
		idx := columns[field]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	size := get("size")
	brand := get("brand")
	model := get("model")
	rawCost := get("cost")
	if size == "" && brand == "" && model == "" && rawCost == "" {
		return types.PriceListRow{}, false
	}

	// An unparseable cost flows through as zero and is rejected by the
	// ingestion validator with a per-row reason.
	cost, err := ParsePrice(rawCost)
	if err != nil {
		cost = 0
	}

	return types.PriceListRow{
		Size:  size,
		Brand: brand,
		Model: model,
		Cost:  cost,
	}, true
}
