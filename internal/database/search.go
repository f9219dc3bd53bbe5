package database

import (
	"context"
	"fmt"
)

// SearchRow is one price hit for a size query, joined across catalog and
// suppliers. IDs are carried so the caller can resolve the winning margin
// rule and compute the sell price per row.
type SearchRow struct {
	PriceID      string  `json:"priceId"`
	Size         string  `json:"size"`
	TyreSizeID   string  `json:"tyreSizeId"`
	Brand        string  `json:"brand"`
	BrandID      string  `json:"brandId"`
	Model        string  `json:"model"`
	TyreModelID  string  `json:"tyreModelId"`
	SupplierName string  `json:"supplier"`
	SupplierID   string  `json:"supplierId"`
	Cost         float64 `json:"cost"`
}

// SearchStore serves the size-query read path.
type SearchStore struct {
	db DBExecutor
}

// NewSearchStore creates a search store backed by the given executor.
func NewSearchStore(db DBExecutor) *SearchStore {
	return &SearchStore{db: db}
}

// BySize returns every price the user's suppliers carry for the canonical
// size string, cheapest first.
func (s *SearchStore) BySize(ctx context.Context, userID, size string) ([]SearchRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, ts.size, ts.id, b.name, b.id, m.name, m.id, sup.name, sup.id, p.cost
		FROM tyre_prices p
		JOIN tyre_sizes ts ON ts.id = p.tyre_size_id
		JOIN tyre_models m ON m.id = p.tyre_model_id
		JOIN tyre_brands b ON b.id = p.brand_id
		JOIN suppliers sup ON sup.id = p.supplier_id
		WHERE ts.size = $1 AND sup.user_id = $2
		ORDER BY p.cost
	`, size, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to search prices for size %s: %w", size, err)
	}
	defer rows.Close()

	var results []SearchRow
	for rows.Next() {
		var r SearchRow
		if err := rows.Scan(&r.PriceID, &r.Size, &r.TyreSizeID, &r.Brand, &r.BrandID,
			&r.Model, &r.TyreModelID, &r.SupplierName, &r.SupplierID, &r.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
