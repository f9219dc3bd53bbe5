package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tyredesk/tyre-service/internal/database"
	"github.com/tyredesk/tyre-service/internal/middleware"
	"github.com/tyredesk/tyre-service/internal/pricing"
	"github.com/tyredesk/tyre-service/internal/tyres"
)

// SearchResult is one price hit with the resolved margin applied.
type SearchResult struct {
	Size      string  `json:"size" jsonschema:"required"`
	Brand     string  `json:"brand" jsonschema:"required"`
	Model     string  `json:"model" jsonschema:"required"`
	Supplier  string  `json:"supplier" jsonschema:"required"`
	Cost      float64 `json:"cost" jsonschema:"required"`
	SellPrice float64 `json:"sellPrice" jsonschema:"required"`
}

// SearchResponse represents the response for a size search
type SearchResponse struct {
	Size    string         `json:"size"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}

// SearchBySize returns every supplier price for a tyre size with sell
// prices computed from the caller's margin rules
// @Summary Search prices by tyre size
// @Description Looks up all supplier prices for a size like 205/55R16, cheapest first, applying the caller's margin configuration per row
// @Tags search
// @Produce json
// @Param size query string true "Tyre size (e.g. 205/55R16)"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Router /api/search [get]
func SearchBySize(c *gin.Context) {
	raw := c.Query("size")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size query parameter is required"})
		return
	}

	// Free-form sizes are tolerated on the read path: a parseable size is
	// normalized, anything else is looked up as-is and simply finds nothing.
	canonical := tyres.Canonical(raw)

	userID := middleware.UserID(c)
	pool := database.Pool()
	ctx := c.Request.Context()

	rows, err := database.NewSearchStore(pool).BySize(ctx, userID, canonical)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search prices"})
		return
	}

	configs, err := database.NewMarginStore(pool).ListForUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load margin configuration"})
		return
	}
	rules := marginRules(configs)

	results := make([]SearchResult, 0, len(rows))
	for _, row := range rows {
		margin := pricing.Resolve(rules, row.TyreSizeID, row.BrandID, row.TyreModelID)
		results = append(results, SearchResult{
			Size:      row.Size,
			Brand:     row.Brand,
			Model:     row.Model,
			Supplier:  row.SupplierName,
			Cost:      row.Cost,
			SellPrice: pricing.SellPrice(row.Cost, margin),
		})
	}

	c.JSON(http.StatusOK, SearchResponse{
		Size:    canonical,
		Results: results,
		Total:   len(results),
	})
}

// marginRules flattens stored margin configs into resolver rules.
func marginRules(configs []database.MarginConfig) []pricing.Rule {
	rules := make([]pricing.Rule, 0, len(configs))
	for _, mc := range configs {
		rule := pricing.Rule{
			ID:       mc.ID,
			Type:     mc.MarginType,
			Value:    mc.MarginValue,
			Priority: mc.Priority,
		}
		if mc.TyreSizeID != nil {
			rule.TyreSizeID = *mc.TyreSizeID
		}
		if mc.BrandID != nil {
			rule.BrandID = *mc.BrandID
		}
		if mc.TyreModelID != nil {
			rule.TyreModelID = *mc.TyreModelID
		}
		rules = append(rules, rule)
	}
	return rules
}
