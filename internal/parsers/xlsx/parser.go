// Package xlsx parses structured Excel price lists into extraction rows.
package xlsx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	pricecsv "github.com/tyredesk/tyre-service/internal/parsers/csv"
	"github.com/tyredesk/tyre-service/internal/types"
)

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

// Parse reads the first worksheet and maps size/brand/model/cost columns
// by header name. Rows missing every field are skipped; an unparseable
// cost flows through as zero for the ingestion validator to reject.
func Parse(content []byte) ([]types.PriceListRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no worksheets")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}
	if len(cells) < 2 {
		return nil, fmt.Errorf("Excel file has no data rows")
	}

	columns, err := mapColumns(cells[0])
	if err != nil {
		return nil, err
	}

	var rows []types.PriceListRow
	for _, record := range cells[1:] {
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
			continue
		}

		cost, err := pricecsv.ParsePrice(rawCost)
		if err != nil {
			cost = 0
		}

		rows = append(rows, types.PriceListRow{
			Size:  size,
			Brand: brand,
			Model: model,
			Cost:  cost,
		})
	}

	return rows, nil
}

// IsStructured reports whether the workbook's first sheet carries the
// expected header row.
func IsStructured(content []byte) bool {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return false
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return false
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil || len(cells) == 0 {
		return false
	}
	_, err = mapColumns(cells[0])
	return err == nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if field, ok := headerAliases[key]; ok {
			if _, seen := columns[field]; !seen {
				columns[field] = i
			}
		}
	}

	for _, field := range []string{"size", "brand", "model", "cost"} {
		if _, ok := columns[field]; !ok {
			return nil, fmt.Errorf("worksheet header missing %s column", field)
		}
	}
	return columns, nil
}
