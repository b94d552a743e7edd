package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListShopping returns the shopping list.
func (h *KitchenHandler) ListShopping(c *gin.Context) {
	c.JSON(http.StatusOK, h.kitchen.ShoppingList())
}

// GenerateShopping appends the ingredients the meal plan still needs.
func (h *KitchenHandler) GenerateShopping(c *gin.Context) {
	items, err := h.kitchen.GenerateShoppingList(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, items)
}

// ToggleShoppingItem flips the checked flag of one item.
func (h *KitchenHandler) ToggleShoppingItem(c *gin.Context) {
	item, err := h.kitchen.ToggleChecked(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteShoppingItem removes one item from the list.
func (h *KitchenHandler) DeleteShoppingItem(c *gin.Context) {
	if !h.kitchen.RemoveShoppingItem(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "shopping item not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// MoveToStock turns every checked item into stock.
func (h *KitchenHandler) MoveToStock(c *gin.Context) {
	moved := h.kitchen.MoveCheckedToStock(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"moved": moved})
}

// ExportShopping copies the unchecked items to the spreadsheet.
func (h *KitchenHandler) ExportShopping(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "spreadsheet export is not configured"})
		return
	}
	rows, err := h.exporter.ExportShoppingList(c.Request.Context(), h.kitchen.ShoppingList())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
