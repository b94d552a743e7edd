package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/internal/service/kitchen"
)

type mealPlanResponse struct {
	Days     []models.MealPlanDay  `json:"days"`
	Calories []kitchen.DayCalories `json:"calories"`
}

// assignMealRequest fills a slot from a known recipe id, a full recipe, or free text.
// Exactly one of the fields must be set; empty text clears the slot.
type assignMealRequest struct {
	RecipeID string         `json:"recipeId"`
	Recipe   *models.Recipe `json:"recipe"`
	Text     *string        `json:"text"`
}

func planResponse(week []models.MealPlanDay) mealPlanResponse {
	return mealPlanResponse{Days: week, Calories: kitchen.WeekCalories(week)}
}

// GetMealPlan returns the week with per-day calorie totals.
func (h *KitchenHandler) GetMealPlan(c *gin.Context) {
	c.JSON(http.StatusOK, planResponse(h.kitchen.MealPlan()))
}

// GenerateMealPlan replaces the week with a generated plan.
func (h *KitchenHandler) GenerateMealPlan(c *gin.Context) {
	week, err := h.kitchen.GenerateMealPlan(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, planResponse(models.CanonicalWeek(week)))
}

// ClearMealPlan empties the week; it requires ?confirm=true.
func (h *KitchenHandler) ClearMealPlan(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := h.kitchen.ClearWeek(c.Request.Context(), confirmed); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, planResponse(h.kitchen.MealPlan()))
}

// AssignMeal fills one slot of the week.
func (h *KitchenHandler) AssignMeal(c *gin.Context) {
	var req assignMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	set := 0
	for _, present := range []bool{req.RecipeID != "", req.Recipe != nil, req.Text != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		badRequest(c, "provide exactly one of recipeId, recipe or text")
		return
	}

	ctx := c.Request.Context()
	day, meal := c.Param("day"), models.MealType(c.Param("meal"))
	var err error
	switch {
	case req.RecipeID != "":
		err = h.kitchen.AssignRecipeByID(ctx, day, meal, req.RecipeID)
	case req.Recipe != nil:
		err = h.kitchen.AssignMeal(ctx, day, meal, *req.Recipe)
	default:
		_, err = h.kitchen.ManualEntry(ctx, day, meal, *req.Text)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, planResponse(h.kitchen.MealPlan()))
}

// ClearMeal empties one slot.
func (h *KitchenHandler) ClearMeal(c *gin.Context) {
	if err := h.kitchen.ClearMeal(c.Request.Context(), c.Param("day"), models.MealType(c.Param("meal"))); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, planResponse(h.kitchen.MealPlan()))
}

// ExportMealPlan copies the week to the spreadsheet.
func (h *KitchenHandler) ExportMealPlan(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "spreadsheet export is not configured"})
		return
	}
	rows, err := h.exporter.ExportMealPlan(c.Request.Context(), h.kitchen.MealPlan())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
