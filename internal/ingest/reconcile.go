package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tyredesk/tyre-service/internal/database"
	"github.com/tyredesk/tyre-service/internal/types"
	"github.com/tyredesk/tyre-service/internal/tyres"
)

// Catalog is the persistence surface the reconciler works against.
// *database.CatalogStore satisfies it; tests use an in-memory fake.
type Catalog interface {
	ListSizes(ctx context.Context) ([]database.TyreSize, error)
	ListBrands(ctx context.Context) ([]database.TyreBrand, error)
	ListModels(ctx context.Context) ([]database.TyreModel, error)
	CreateSize(ctx context.Context, size tyres.Size) (database.TyreSize, error)
	CreateBrand(ctx context.Context, name string) (database.TyreBrand, error)
	CreateModel(ctx context.Context, brandID, name string) (database.TyreModel, error)
	UpsertPrice(ctx context.Context, price database.TyrePrice) error
}

// RowFailure is a row that could not be persisted. It never aborts the batch.
type RowFailure struct {
	Row types.PriceListRow
	Err error
}

// ReconcileResult summarizes one reconciliation batch.
type ReconcileResult struct {
	Persisted     int
	Failed        []RowFailure
	SizesCreated  int
	BrandsCreated int
	ModelsCreated int
}

// batchState is the lookup table threaded through a reconciliation run:
// a snapshot of the persisted catalog merged with entities created during
// this batch, so the same brand/model/size is never created twice in one
// ingestion.
type batchState struct {
	sizesByCanonical map[string]database.TyreSize
	brandsByName     map[string]database.TyreBrand // key: lowercased name
	modelsByKey      map[string]database.TyreModel // key: brandID + "\x00" + lowercased name
}

func modelKey(brandID, name string) string {
	return brandID + "\x00" + strings.ToLower(strings.TrimSpace(name))
}

// Reconciler resolves validated price list rows against the shared catalog
// and upserts supplier prices.
type Reconciler struct {
	catalog Catalog
	logger  zerolog.Logger
}

// NewReconciler creates a reconciler over the given catalog.
func NewReconciler(catalog Catalog, logger zerolog.Logger) *Reconciler {
	return &Reconciler{catalog: catalog, logger: logger}
}

// Reconcile processes rows sequentially. Each row resolves its size, brand
// and model to catalog IDs (creating entities on first encounter) and
// upserts the supplier price. A failed row is logged and skipped; it does
// not abort the remaining rows. Rows are expected to have passed
// ValidateRows already.
func (r *Reconciler) Reconcile(ctx context.Context, supplierID string, rows []types.PriceListRow) (*ReconcileResult, error) {
	state, err := r.loadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	result := &ReconcileResult{}

	for _, row := range rows {
		if err := r.reconcileRow(ctx, state, supplierID, row, result); err != nil {
			r.logger.Error().Err(err).
				Str("supplier_id", supplierID).
				Str("size", row.Size).
				Str("brand", row.Brand).
				Str("model", row.Model).
				Msg("Failed to persist price row, skipping")
			result.Failed = append(result.Failed, RowFailure{Row: row, Err: err})
			continue
		}
		result.Persisted++
	}

	return result, nil
}

// loadState snapshots the persisted catalog. The three listings are
// independent reads, fetched concurrently.
func (r *Reconciler) loadState(ctx context.Context) (*batchState, error) {
	state := &batchState{
		sizesByCanonical: make(map[string]database.TyreSize),
		brandsByName:     make(map[string]database.TyreBrand),
		modelsByKey:      make(map[string]database.TyreModel),
	}

	g, gctx := errgroup.WithContext(ctx)

	var sizes []database.TyreSize
	var brands []database.TyreBrand
	var models []database.TyreModel

	g.Go(func() error {
		var err error
		sizes, err = r.catalog.ListSizes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		brands, err = r.catalog.ListBrands(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		models, err = r.catalog.ListModels(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, s := range sizes {
		state.sizesByCanonical[s.Size] = s
	}
	for _, b := range brands {
		state.brandsByName[strings.ToLower(b.Name)] = b
	}
	for _, m := range models {
		state.modelsByKey[modelKey(m.BrandID, m.Name)] = m
	}

	return state, nil
}

func (r *Reconciler) reconcileRow(ctx context.Context, state *batchState, supplierID string, row types.PriceListRow, result *ReconcileResult) error {
	size, err := r.resolveSize(ctx, state, row.Size, result)
	if err != nil {
		return err
	}

	brand, err := r.resolveBrand(ctx, state, row.Brand, result)
	if err != nil {
		return err
	}

	model, err := r.resolveModel(ctx, state, brand.ID, row.Model, result)
	if err != nil {
		return err
	}

	return r.catalog.UpsertPrice(ctx, database.TyrePrice{
		SupplierID:  supplierID,
		TyreSizeID:  size.ID,
		TyreModelID: model.ID,
		BrandID:     brand.ID,
		Cost:        row.Cost,
	})
}

// resolveSize matches on the exact canonical string; rows reach here
// already validated, so a parse failure is unexpected.
func (r *Reconciler) resolveSize(ctx context.Context, state *batchState, raw string, result *ReconcileResult) (database.TyreSize, error) {
	parsed, err := tyres.ParseSize(strings.TrimSpace(raw))
	if err != nil {
		return database.TyreSize{}, err
	}

	if existing, ok := state.sizesByCanonical[parsed.Canonical]; ok {
		return existing, nil
	}

	created, err := r.catalog.CreateSize(ctx, parsed)
	if err != nil {
		return database.TyreSize{}, err
	}
	state.sizesByCanonical[created.Size] = created
	result.SizesCreated++
	r.logger.Debug().Str("size", created.Size).Msg("Created tyre size")
	return created, nil
}

func (r *Reconciler) resolveBrand(ctx context.Context, state *batchState, name string, result *ReconcileResult) (database.TyreBrand, error) {
	trimmed := strings.TrimSpace(name)
	if existing, ok := state.brandsByName[strings.ToLower(trimmed)]; ok {
		return existing, nil
	}

	created, err := r.catalog.CreateBrand(ctx, trimmed)
	if err != nil {
		return database.TyreBrand{}, err
	}
	state.brandsByName[strings.ToLower(created.Name)] = created
	result.BrandsCreated++
	r.logger.Debug().Str("brand", created.Name).Msg("Created tyre brand")
	return created, nil
}

func (r *Reconciler) resolveModel(ctx context.Context, state *batchState, brandID, name string, result *ReconcileResult) (database.TyreModel, error) {
	trimmed := strings.TrimSpace(name)
	if existing, ok := state.modelsByKey[modelKey(brandID, trimmed)]; ok {
		return existing, nil
	}

	created, err := r.catalog.CreateModel(ctx, brandID, trimmed)
	if err != nil {
		return database.TyreModel{}, err
	}
	state.modelsByKey[modelKey(created.BrandID, created.Name)] = created
	result.ModelsCreated++
	r.logger.Debug().Str("brand_id", brandID).Str("model", created.Name).Msg("Created tyre model")
	return created, nil
}
