package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/kitchen/internal/domain/models"
)

type recipeView struct {
	models.Recipe
	Saved bool `json:"saved"`
}

func (h *KitchenHandler) withSaved(recipes []models.Recipe) []recipeView {
	out := make([]recipeView, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, recipeView{Recipe: r, Saved: h.kitchen.IsSaved(r.ID)})
	}
	return out
}

// ListRecipes returns the discovered recipes, newest first.
func (h *KitchenHandler) ListRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, h.withSaved(h.kitchen.DiscoveredRecipes()))
}

// ListSavedRecipes returns the bookmarked recipes.
func (h *KitchenHandler) ListSavedRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, h.withSaved(h.kitchen.SavedRecipes()))
}

// SearchRecipes filters discovered recipes by ?q=.
func (h *KitchenHandler) SearchRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, h.withSaved(h.kitchen.SearchRecipes(c.Query("q"))))
}

// GenerateRecipes asks for new recipes built on the current stock.
func (h *KitchenHandler) GenerateRecipes(c *gin.Context) {
	recipes, err := h.kitchen.GenerateRecipes(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.withSaved(recipes))
}

// SaveRecipe bookmarks a recipe.
func (h *KitchenHandler) SaveRecipe(c *gin.Context) {
	if err := h.kitchen.SaveRecipe(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnsaveRecipe removes a bookmark.
func (h *KitchenHandler) UnsaveRecipe(c *gin.Context) {
	if !h.kitchen.UnsaveRecipe(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe is not saved"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteRecipe removes a recipe from the discovered list.
func (h *KitchenHandler) DeleteRecipe(c *gin.Context) {
	if !h.kitchen.RemoveDiscoveredRecipe(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
