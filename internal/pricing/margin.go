// Package pricing resolves margin rules and computes sell prices.
package pricing

import "github.com/tyredesk/tyre-service/internal/types"

// DefaultMarginPercent is applied when no margin rule matches at all.
const DefaultMarginPercent = 30

// Margin is a resolved markup: either a percentage of cost or a fixed
// additive amount.
type Margin struct {
	Type  types.MarginType `json:"marginType"`
	Value float64          `json:"marginValue"`
}

// Rule is a margin configuration scoped by zero or more of size, brand and
// model. An empty scope field means "matches all" for that dimension.
// Priority is display metadata only; resolution never consults it.
type Rule struct {
	ID         string           `json:"id"`
	TyreSizeID string           `json:"tyreSizeId,omitempty"`
	BrandID    string           `json:"brandId,omitempty"`
	TyreModelID string          `json:"tyreModelId,omitempty"`
	Type       types.MarginType `json:"marginType"`
	Value      float64          `json:"marginValue"`
	Priority   int              `json:"priority"`
}

func (r Rule) margin() Margin {
	return Margin{Type: r.Type, Value: r.Value}
}

// Resolve selects the single most specific rule for the given target.
// The search order is fixed: model, then size+brand, then brand only,
// then size only, then the global rule. A target without a configured
// global rule falls back to the default percentage margin.
func Resolve(rules []Rule, sizeID, brandID, modelID string) Margin {
	if modelID != "" {
		for _, r := range rules {
			if r.TyreModelID == modelID {
				return r.margin()
			}
		}
	}

	for _, r := range rules {
		if r.TyreModelID == "" && r.TyreSizeID == sizeID && r.TyreSizeID != "" && r.BrandID == brandID && r.BrandID != "" {
			return r.margin()
		}
	}

	for _, r := range rules {
		if r.TyreModelID == "" && r.BrandID == brandID && r.BrandID != "" && r.TyreSizeID == "" {
			return r.margin()
		}
	}

	for _, r := range rules {
		if r.TyreModelID == "" && r.TyreSizeID == sizeID && r.TyreSizeID != "" && r.BrandID == "" {
			return r.margin()
		}
	}

	for _, r := range rules {
		if r.TyreModelID == "" && r.TyreSizeID == "" && r.BrandID == "" {
			return r.margin()
		}
	}

	return Margin{Type: types.MarginPercentage, Value: DefaultMarginPercent}
}

// SellPrice computes the sell price for a cost under the given margin.
// No rounding: display formatting is a presentation concern.
func SellPrice(cost float64, m Margin) float64 {
	if m.Type == types.MarginFixed {
		return cost + m.Value
	}
	return cost * (1 + m.Value/100)
}
