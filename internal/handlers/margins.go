package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/tyredesk/tyre-service/internal/database"
	"github.com/tyredesk/tyre-service/internal/middleware"
	"github.com/tyredesk/tyre-service/internal/types"
)

// MarginRequest represents the create/update payload for a margin rule
type MarginRequest struct {
	TyreSizeID  *string `json:"tyreSizeId,omitempty"`
	BrandID     *string `json:"brandId,omitempty"`
	TyreModelID *string `json:"tyreModelId,omitempty"`
	MarginType  string  `json:"marginType" binding:"required" jsonschema:"required,enum=percentage,enum=fixed"`
	MarginValue float64 `json:"marginValue" jsonschema:"required"`
	Priority    int     `json:"priority"`
}

func (r MarginRequest) validate() string {
	switch types.MarginType(r.MarginType) {
	case types.MarginPercentage, types.MarginFixed:
	default:
		return "marginType must be 'percentage' or 'fixed'"
	}
	if r.MarginValue < 0 {
		return "marginValue must not be negative"
	}
	return ""
}

// ListMargins returns the caller's margin rules ordered for display
// @Summary List margin rules
// @Tags margins
// @Produce json
// @Success 200 {object} map[string][]database.MarginConfig
// @Router /api/margins [get]
func ListMargins(c *gin.Context) {
	store := database.NewMarginStore(database.Pool())
	margins, err := store.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list margin rules"})
		return
	}
	if margins == nil {
		margins = []database.MarginConfig{}
	}

	c.JSON(http.StatusOK, gin.H{"margins": margins})
}

// CreateMargin creates a margin rule for the caller
// @Summary Create a margin rule
// @Description Creates a margin rule scoped by any combination of size, brand and model. All scope fields empty makes a global rule.
// @Tags margins
// @Accept json
// @Produce json
// @Param margin body MarginRequest true "Margin rule"
// @Success 201 {object} database.MarginConfig
// @Failure 400 {object} map[string]string "Bad request"
// @Router /api/margins [post]
func CreateMargin(c *gin.Context) {
	var req MarginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	store := database.NewMarginStore(database.Pool())
	margin, err := store.Create(c.Request.Context(), database.MarginConfig{
		UserID:      middleware.UserID(c),
		TyreSizeID:  req.TyreSizeID,
		BrandID:     req.BrandID,
		TyreModelID: req.TyreModelID,
		MarginType:  types.MarginType(req.MarginType),
		MarginValue: req.MarginValue,
		Priority:    req.Priority,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create margin rule"})
		return
	}

	c.JSON(http.StatusCreated, margin)
}

// UpdateMargin overwrites a margin rule owned by the caller
// @Summary Update a margin rule
// @Tags margins
// @Accept json
// @Produce json
// @Param id path string true "Margin rule ID"
// @Param margin body MarginRequest true "Margin rule"
// @Success 200 {object} database.MarginConfig
// @Failure 404 {object} map[string]string "Margin rule not found"
// @Router /api/margins/{id} [put]
func UpdateMargin(c *gin.Context) {
	var req MarginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	store := database.NewMarginStore(database.Pool())
	margin, err := store.Update(c.Request.Context(), database.MarginConfig{
		ID:          c.Param("id"),
		UserID:      middleware.UserID(c),
		TyreSizeID:  req.TyreSizeID,
		BrandID:     req.BrandID,
		TyreModelID: req.TyreModelID,
		MarginType:  types.MarginType(req.MarginType),
		MarginValue: req.MarginValue,
		Priority:    req.Priority,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "margin rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update margin rule"})
		return
	}

	c.JSON(http.StatusOK, margin)
}

// DeleteMargin removes a margin rule owned by the caller
// @Summary Delete a margin rule
// @Tags margins
// @Param id path string true "Margin rule ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Margin rule not found"
// @Router /api/margins/{id} [delete]
func DeleteMargin(c *gin.Context) {
	store := database.NewMarginStore(database.Pool())
	if err := store.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "margin rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete margin rule"})
		return
	}

	c.Status(http.StatusNoContent)
}
