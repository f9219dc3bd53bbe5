package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tyredesk/tyre-service/internal/types"
)

// Rule set mirroring the five specificity tiers. Priority values are
// deliberately scrambled: they must never influence resolution.
func tierRules() []Rule {
	return []Rule{
		{ID: "global", Type: types.MarginPercentage, Value: 30, Priority: 99},
		{ID: "size-only", TyreSizeID: "S1", Type: types.MarginPercentage, Value: 35, Priority: 1},
		{ID: "brand-only", BrandID: "B1", Type: types.MarginPercentage, Value: 25, Priority: 50},
		{ID: "size-brand", TyreSizeID: "S1", BrandID: "B1", Type: types.MarginPercentage, Value: 20, Priority: 2},
		{ID: "model", TyreModelID: "M1", Type: types.MarginPercentage, Value: 10, Priority: 0},
	}
}

func TestResolvePrecedence(t *testing.T) {
	rules := tierRules()

	tests := []struct {
		name    string
		sizeID  string
		brandID string
		modelID string
		want    float64
	}{
		{name: "model wins over everything", sizeID: "S1", brandID: "B1", modelID: "M1", want: 10},
		{name: "size+brand when no model rule applies", sizeID: "S1", brandID: "B1", want: 20},
		{name: "brand rule for other sizes", sizeID: "S2", brandID: "B1", want: 25},
		{name: "size rule for other brands", sizeID: "S1", brandID: "B2", want: 35},
		{name: "global rule when nothing matches", sizeID: "S9", brandID: "B9", want: 30},
		{name: "unknown model falls through to size+brand", sizeID: "S1", brandID: "B1", modelID: "M9", want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Resolve(rules, tt.sizeID, tt.brandID, tt.modelID)
			assert.Equal(t, types.MarginPercentage, m.Type)
			assert.Equal(t, tt.want, m.Value)
		})
	}
}

func TestResolveFallback(t *testing.T) {
	m := Resolve(nil, "S1", "B1", "M1")
	assert.Equal(t, types.MarginPercentage, m.Type)
	assert.Equal(t, float64(DefaultMarginPercent), m.Value)
}

func TestResolveIgnoresPriority(t *testing.T) {
	// A brand rule with an enormous priority must still lose to a
	// size+brand rule: resolution is scope-driven, not priority-driven.
	rules := []Rule{
		{ID: "brand", BrandID: "B1", Type: types.MarginPercentage, Value: 50, Priority: 1000},
		{ID: "size-brand", TyreSizeID: "S1", BrandID: "B1", Type: types.MarginPercentage, Value: 15, Priority: 0},
	}
	m := Resolve(rules, "S1", "B1", "")
	assert.Equal(t, float64(15), m.Value)
}

func TestResolveScopedRulesDoNotMatchAsGlobal(t *testing.T) {
	// A rule scoped to a model must not act as a global default for
	// unrelated targets.
	rules := []Rule{
		{ID: "model", TyreModelID: "M1", Type: types.MarginFixed, Value: 5},
	}
	m := Resolve(rules, "S2", "B2", "")
	assert.Equal(t, types.MarginPercentage, m.Type)
	assert.Equal(t, float64(DefaultMarginPercent), m.Value)
}

func TestSellPrice(t *testing.T) {
	tests := []struct {
		name   string
		cost   float64
		margin Margin
		want   float64
	}{
		{name: "percentage", cost: 100, margin: Margin{Type: types.MarginPercentage, Value: 30}, want: 130},
		{name: "percentage fractional", cost: 120, margin: Margin{Type: types.MarginPercentage, Value: 12.5}, want: 135},
		{name: "fixed", cost: 100, margin: Margin{Type: types.MarginFixed, Value: 25}, want: 125},
		{name: "zero percentage is identity", cost: 83.4, margin: Margin{Type: types.MarginPercentage, Value: 0}, want: 83.4},
		{name: "zero fixed is identity", cost: 83.4, margin: Margin{Type: types.MarginFixed, Value: 0}, want: 83.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SellPrice(tt.cost, tt.margin), 1e-9)
		})
	}
}
