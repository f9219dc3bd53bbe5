package ingest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyredesk/tyre-service/internal/database"
	"github.com/tyredesk/tyre-service/internal/types"
	"github.com/tyredesk/tyre-service/internal/tyres"
)

// memCatalog is an in-memory Catalog for reconciler tests.
type memCatalog struct {
	sizes  []database.TyreSize
	brands []database.TyreBrand
	models []database.TyreModel
	prices map[string]database.TyrePrice // key: supplier|size|model

	nextID      int
	upsertCalls int
	failUpsert  func(p database.TyrePrice) bool
}

func newMemCatalog() *memCatalog {
	return &memCatalog{prices: make(map[string]database.TyrePrice)}
}

func (c *memCatalog) id(prefix string) string {
	c.nextID++
	return fmt.Sprintf("%s-%d", prefix, c.nextID)
}

func (c *memCatalog) ListSizes(ctx context.Context) ([]database.TyreSize, error) {
	return append([]database.TyreSize(nil), c.sizes...), nil
}

func (c *memCatalog) ListBrands(ctx context.Context) ([]database.TyreBrand, error) {
	return append([]database.TyreBrand(nil), c.brands...), nil
}

func (c *memCatalog) ListModels(ctx context.Context) ([]database.TyreModel, error) {
	return append([]database.TyreModel(nil), c.models...), nil
}

func (c *memCatalog) CreateSize(ctx context.Context, size tyres.Size) (database.TyreSize, error) {
	ts := database.TyreSize{
		ID:          c.id("size"),
		Size:        size.Canonical,
		Width:       size.Width,
		AspectRatio: size.AspectRatio,
		Diameter:    size.Diameter,
		CreatedAt:   time.Now(),
	}
	c.sizes = append(c.sizes, ts)
	return ts, nil
}

func (c *memCatalog) CreateBrand(ctx context.Context, name string) (database.TyreBrand, error) {
	b := database.TyreBrand{ID: c.id("brand"), Name: name, CreatedAt: time.Now()}
	c.brands = append(c.brands, b)
	return b, nil
}

func (c *memCatalog) CreateModel(ctx context.Context, brandID, name string) (database.TyreModel, error) {
	m := database.TyreModel{ID: c.id("model"), BrandID: brandID, Name: name, CreatedAt: time.Now()}
	c.models = append(c.models, m)
	return m, nil
}

func (c *memCatalog) UpsertPrice(ctx context.Context, price database.TyrePrice) error {
	c.upsertCalls++
	if c.failUpsert != nil && c.failUpsert(price) {
		return fmt.Errorf("simulated upsert failure")
	}
	key := price.SupplierID + "|" + price.TyreSizeID + "|" + price.TyreModelID
	now := time.Now()
	if existing, ok := c.prices[key]; ok {
		existing.Cost = price.Cost
		existing.BrandID = price.BrandID
		existing.UpdatedAt = now
		c.prices[key] = existing
		return nil
	}
	price.ID = c.id("price")
	price.CreatedAt = now
	price.UpdatedAt = now
	c.prices[key] = price
	return nil
}

func testReconciler(c Catalog) *Reconciler {
	return NewReconciler(c, zerolog.Nop())
}

func sampleRows() []types.PriceListRow {
	return []types.PriceListRow{
		{Size: "205/55R16", Brand: "Michelin", Model: "Primacy 4", Cost: 120},
		{Size: "205/55R16", Brand: "Continental", Model: "PremiumContact 6", Cost: 110},
		{Size: "225/45R17", Brand: "Michelin", Model: "Pilot Sport 4", Cost: 160},
	}
}

func TestReconcileCreatesCatalogEntities(t *testing.T) {
	catalog := newMemCatalog()
	ctx := context.Background()

	result, err := testReconciler(catalog).Reconcile(ctx, "sup-1", sampleRows())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Persisted)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 2, result.SizesCreated)
	assert.Equal(t, 2, result.BrandsCreated)
	assert.Equal(t, 3, result.ModelsCreated)
	assert.Len(t, catalog.prices, 3)
}

func TestReconcileIdempotent(t *testing.T) {
	catalog := newMemCatalog()
	ctx := context.Background()
	r := testReconciler(catalog)

	first, err := r.Reconcile(ctx, "sup-1", sampleRows())
	require.NoError(t, err)
	require.Equal(t, 3, first.Persisted)

	// Same batch again: no new catalog entities, same price count, costs
	// reflect the second run.
	rows := sampleRows()
	rows[0].Cost = 125
	second, err := r.Reconcile(ctx, "sup-1", rows)
	require.NoError(t, err)

	assert.Equal(t, 3, second.Persisted)
	assert.Zero(t, second.SizesCreated)
	assert.Zero(t, second.BrandsCreated)
	assert.Zero(t, second.ModelsCreated)
	assert.Len(t, catalog.sizes, 2)
	assert.Len(t, catalog.brands, 2)
	assert.Len(t, catalog.models, 3)
	assert.Len(t, catalog.prices, 3)

	for _, p := range catalog.prices {
		if p.Cost == 125 {
			return
		}
	}
	t.Fatal("expected one price updated to the second run's cost")
}

func TestReconcileCaseInsensitiveBrandMatch(t *testing.T) {
	catalog := newMemCatalog()
	ctx := context.Background()
	r := testReconciler(catalog)

	_, err := r.Reconcile(ctx, "sup-1", []types.PriceListRow{
		{Size: "205/55R16", Brand: "Michelin", Model: "Primacy 4", Cost: 120},
	})
	require.NoError(t, err)

	result, err := r.Reconcile(ctx, "sup-1", []types.PriceListRow{
		{Size: "205/55R16", Brand: "michelin", Model: "PRIMACY 4", Cost: 118},
	})
	require.NoError(t, err)

	assert.Zero(t, result.BrandsCreated)
	assert.Zero(t, result.ModelsCreated)
	require.Len(t, catalog.brands, 1)
	// Original casing is preserved
	assert.Equal(t, "Michelin", catalog.brands[0].Name)
	assert.Len(t, catalog.models, 1)
}

func TestReconcileSameModelNameAcrossBrands(t *testing.T) {
	catalog := newMemCatalog()
	ctx := context.Background()

	result, err := testReconciler(catalog).Reconcile(ctx, "sup-1", []types.PriceListRow{
		{Size: "205/55R16", Brand: "Michelin", Model: "Sport", Cost: 120},
		{Size: "205/55R16", Brand: "Pirelli", Model: "Sport", Cost: 130},
	})
	require.NoError(t, err)

	// Same model name under different brands is a distinct entity
	assert.Equal(t, 2, result.ModelsCreated)
	assert.Len(t, catalog.models, 2)
	assert.Len(t, catalog.prices, 2)
}

func TestReconcileNewEntitiesVisibleWithinBatch(t *testing.T) {
	catalog := newMemCatalog()
	ctx := context.Background()

	// Five rows, one brand: the brand must be created exactly once
	rows := []types.PriceListRow{
		{Size: "205/55R16", Brand: "Michelin", Model: "Primacy 4", Cost: 120},
		{Size: "225/45R17", Brand: "michelin", Model: "Pilot Sport 4", Cost: 160},
		{Size: "235/35R19", Brand: "MICHELIN", Model: "Pilot Sport 4S", Cost: 210},
		{Size: "265/70R16", Brand: "Michelin", Model: "Latitude Cross", Cost: 180},
		{Size: "195/65R15", Brand: "Michelin", Model: "Energy Saver", Cost: 95},
	}

	result, err := testReconciler(catalog).Reconcile(ctx, "sup-1", rows)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Persisted)
	assert.Equal(t, 1, result.BrandsCreated)
	assert.Len(t, catalog.brands, 1)
}

func TestReconcileRowFailureDoesNotAbortBatch(t *testing.T) {
	catalog := newMemCatalog()
	catalog.failUpsert = func(p database.TyrePrice) bool {
		return p.Cost == 110 // fail the middle row only
	}
	ctx := context.Background()

	result, err := testReconciler(catalog).Reconcile(ctx, "sup-1", sampleRows())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Persisted)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "Continental", result.Failed[0].Row.Brand)
	assert.Error(t, result.Failed[0].Err)
	assert.Len(t, catalog.prices, 2)
}

func TestReconcileDenormalizedBrandMatchesModel(t *testing.T) {
	catalog := newMemCatalog()
	ctx := context.Background()

	_, err := testReconciler(catalog).Reconcile(ctx, "sup-1", sampleRows())
	require.NoError(t, err)

	modelBrand := make(map[string]string)
	for _, m := range catalog.models {
		modelBrand[m.ID] = m.BrandID
	}
	for _, p := range catalog.prices {
		assert.Equal(t, modelBrand[p.TyreModelID], p.BrandID,
			"price brand_id must agree with the referenced model's brand")
	}
}

func TestModelKeyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, modelKey("b1", "Primacy 4"), modelKey("b1", " primacy 4 "))
	assert.NotEqual(t, modelKey("b1", "Primacy 4"), modelKey("b2", "Primacy 4"))
	assert.True(t, strings.Contains(modelKey("b1", "x"), "\x00"))
}
