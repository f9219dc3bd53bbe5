package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tyredesk/tyre-service/internal/tyres"
)

// DBExecutor matches both pgx.Tx and *pgxpool.Pool so store methods can run
// inside or outside a transaction.
type DBExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CatalogStore provides access to the shared tyre catalog (sizes, brands,
// models) and supplier price rows. Catalog entities are global: lookups
// span all users so ingestion never duplicates an existing entity.
type CatalogStore struct {
	db DBExecutor
}

// NewCatalogStore creates a catalog store backed by the given executor.
func NewCatalogStore(db DBExecutor) *CatalogStore {
	return &CatalogStore{db: db}
}

// ListSizes returns every catalog size.
func (s *CatalogStore) ListSizes(ctx context.Context) ([]TyreSize, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, size, width, aspect_ratio, diameter, created_at
		FROM tyre_sizes
		ORDER BY size
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tyre sizes: %w", err)
	}
	defer rows.Close()

	var sizes []TyreSize
	for rows.Next() {
		var ts TyreSize
		if err := rows.Scan(&ts.ID, &ts.Size, &ts.Width, &ts.AspectRatio, &ts.Diameter, &ts.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tyre size: %w", err)
		}
		sizes = append(sizes, ts)
	}
	return sizes, rows.Err()
}

// ListBrands returns every catalog brand.
func (s *CatalogStore) ListBrands(ctx context.Context) ([]TyreBrand, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, created_at
		FROM tyre_brands
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tyre brands: %w", err)
	}
	defer rows.Close()

	var brands []TyreBrand
	for rows.Next() {
		var b TyreBrand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tyre brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// ListModels returns every catalog model.
func (s *CatalogStore) ListModels(ctx context.Context) ([]TyreModel, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, brand_id, name, created_at
		FROM tyre_models
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tyre models: %w", err)
	}
	defer rows.Close()

	var models []TyreModel
	for rows.Next() {
		var m TyreModel
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tyre model: %w", err)
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

// CreateSize inserts a parsed size. The unique index on the canonical string
// is the backstop for concurrent ingestion runs: on conflict the existing
// row is returned instead of a duplicate.
func (s *CatalogStore) CreateSize(ctx context.Context, size tyres.Size) (TyreSize, error) {
	var ts TyreSize
	err := s.db.QueryRow(ctx, `
		INSERT INTO tyre_sizes (id, size, width, aspect_ratio, diameter, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (size) DO UPDATE SET size = EXCLUDED.size
		RETURNING id, size, width, aspect_ratio, diameter, created_at
	`, uuid.New().String(), size.Canonical, size.Width, size.AspectRatio, size.Diameter).Scan(
		&ts.ID, &ts.Size, &ts.Width, &ts.AspectRatio, &ts.Diameter, &ts.CreatedAt)
	if err != nil {
		return TyreSize{}, fmt.Errorf("failed to create tyre size %s: %w", size.Canonical, err)
	}
	return ts, nil
}

// CreateBrand inserts a brand, keeping its original casing. Uniqueness is
// case-insensitive; on conflict the existing row is returned.
func (s *CatalogStore) CreateBrand(ctx context.Context, name string) (TyreBrand, error) {
	var b TyreBrand
	err := s.db.QueryRow(ctx, `
		INSERT INTO tyre_brands (id, name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (lower(name)) DO UPDATE SET name = tyre_brands.name
		RETURNING id, name, created_at
	`, uuid.New().String(), name).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		return TyreBrand{}, fmt.Errorf("failed to create tyre brand %s: %w", name, err)
	}
	return b, nil
}

// CreateModel inserts a model scoped to a brand, case-insensitively unique
// within that brand.
func (s *CatalogStore) CreateModel(ctx context.Context, brandID, name string) (TyreModel, error) {
	var m TyreModel
	err := s.db.QueryRow(ctx, `
		INSERT INTO tyre_models (id, brand_id, name, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (brand_id, lower(name)) DO UPDATE SET name = tyre_models.name
		RETURNING id, brand_id, name, created_at
	`, uuid.New().String(), brandID, name).Scan(&m.ID, &m.BrandID, &m.Name, &m.CreatedAt)
	if err != nil {
		return TyreModel{}, fmt.Errorf("failed to create tyre model %s: %w", name, err)
	}
	return m, nil
}

// UpsertPrice inserts or overwrites a supplier price on its natural key
// (supplier_id, tyre_size_id, tyre_model_id). Repeated ingestion of the
// same pair overwrites cost and bumps updated_at.
func (s *CatalogStore) UpsertPrice(ctx context.Context, price TyrePrice) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO tyre_prices (
			id, supplier_id, tyre_size_id, tyre_model_id, brand_id, cost, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (supplier_id, tyre_size_id, tyre_model_id) DO UPDATE SET
			cost = EXCLUDED.cost,
			brand_id = EXCLUDED.brand_id,
			updated_at = NOW()
	`, uuid.New().String(), price.SupplierID, price.TyreSizeID, price.TyreModelID, price.BrandID, price.Cost)
	if err != nil {
		return fmt.Errorf("failed to upsert tyre price: %w", err)
	}
	return nil
}
