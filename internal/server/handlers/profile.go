package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/kitchen/internal/domain/models"
)

// GetProfile returns the cooking profile.
func (h *KitchenHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.kitchen.Profile())
}

// PatchProfile applies a partial profile update.
func (h *KitchenHandler) PatchProfile(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	profile, err := h.kitchen.UpdateProfile(c.Request.Context(), patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
