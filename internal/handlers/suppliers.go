package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/tyredesk/tyre-service/internal/database"
	"github.com/tyredesk/tyre-service/internal/middleware"
)

// SupplierRequest represents the create/update payload for a supplier
type SupplierRequest struct {
	Name    string  `json:"name" binding:"required" jsonschema:"required"`
	Contact *string `json:"contact,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// ListSuppliers returns the caller's suppliers
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Success 200 {object} map[string][]database.Supplier
// @Router /api/suppliers [get]
func ListSuppliers(c *gin.Context) {
	store := database.NewSupplierStore(database.Pool())
	suppliers, err := store.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list suppliers"})
		return
	}
	if suppliers == nil {
		suppliers = []database.Supplier{}
	}

	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

// GetSupplier returns one supplier owned by the caller
// @Summary Get a supplier
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} database.Supplier
// @Failure 404 {object} map[string]string "Supplier not found"
// @Router /api/suppliers/{id} [get]
func GetSupplier(c *gin.Context) {
	store := database.NewSupplierStore(database.Pool())
	supplier, err := store.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up supplier"})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// CreateSupplier creates a supplier for the caller
// @Summary Create a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplier body SupplierRequest true "Supplier"
// @Success 201 {object} database.Supplier
// @Failure 400 {object} map[string]string "Bad request"
// @Router /api/suppliers [post]
func CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be blank"})
		return
	}

	store := database.NewSupplierStore(database.Pool())
	supplier, err := store.Create(c.Request.Context(), database.Supplier{
		UserID:  middleware.UserID(c),
		Name:    strings.TrimSpace(req.Name),
		Contact: req.Contact,
		Email:   req.Email,
		Phone:   req.Phone,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create supplier"})
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

// UpdateSupplier overwrites a supplier owned by the caller
// @Summary Update a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID"
// @Param supplier body SupplierRequest true "Supplier"
// @Success 200 {object} database.Supplier
// @Failure 404 {object} map[string]string "Supplier not found"
// @Router /api/suppliers/{id} [put]
func UpdateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be blank"})
		return
	}

	store := database.NewSupplierStore(database.Pool())
	supplier, err := store.Update(c.Request.Context(), database.Supplier{
		ID:      c.Param("id"),
		UserID:  middleware.UserID(c),
		Name:    strings.TrimSpace(req.Name),
		Contact: req.Contact,
		Email:   req.Email,
		Phone:   req.Phone,
	})
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update supplier"})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier removes a supplier owned by the caller
// @Summary Delete a supplier
// @Tags suppliers
// @Param id path string true "Supplier ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Supplier not found"
// @Router /api/suppliers/{id} [delete]
func DeleteSupplier(c *gin.Context) {
	store := database.NewSupplierStore(database.Pool())
	if err := store.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete supplier"})
		return
	}

	c.Status(http.StatusNoContent)
}
