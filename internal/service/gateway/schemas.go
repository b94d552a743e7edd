package gateway

import (
	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/pkg/clients/llm"
)

func categoryEnum() []string {
	out := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		out[i] = string(c)
	}
	return out
}

var receiptSchema = &llm.Schema{
	Type: llm.TypeArray,
	Items: &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"name":            {Type: llm.TypeString},
			"quantity":        {Type: llm.TypeString},
			"category":        {Type: llm.TypeString, Enum: categoryEnum()},
			"expiryDate":      {Type: llm.TypeString, Description: "YYYY-MM-DD"},
			"caloriesPerUnit": {Type: llm.TypeNumber, Description: "Approximate calories per unit/serving"},
		},
		Required: []string{"name", "quantity", "category", "expiryDate"},
	},
}

var recipeSchema = &llm.Schema{
	Type: llm.TypeArray,
	Items: &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"title":       {Type: llm.TypeString},
			"description": {Type: llm.TypeString},
			"ingredients": {
				Type: llm.TypeArray,
				Items: &llm.Schema{
					Type: llm.TypeObject,
					Properties: map[string]*llm.Schema{
						"name":   {Type: llm.TypeString},
						"amount": {Type: llm.TypeString},
					},
				},
			},
			"instructions": {Type: llm.TypeArray, Items: &llm.Schema{Type: llm.TypeString}},
			"prepTime":     {Type: llm.TypeInteger, Description: "minutes"},
			"cookTime":     {Type: llm.TypeInteger, Description: "minutes"},
			"calories":     {Type: llm.TypeNumber},
			"matchScore":   {Type: llm.TypeNumber, Description: "0-100 share of ingredients already in stock"},
			"tags":         {Type: llm.TypeArray, Items: &llm.Schema{Type: llm.TypeString}},
		},
		Required: []string{"title"},
	},
}

func plannedMealSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"title":    {Type: llm.TypeString},
			"calories": {Type: llm.TypeNumber},
			"prepTime": {Type: llm.TypeInteger},
			"cookTime": {Type: llm.TypeInteger},
			"ingredients": {
				Type: llm.TypeArray,
				Items: &llm.Schema{
					Type: llm.TypeObject,
					Properties: map[string]*llm.Schema{
						"name":   {Type: llm.TypeString},
						"amount": {Type: llm.TypeString},
					},
				},
			},
		},
		Required: []string{"title"},
	}
}

var mealPlanSchema = &llm.Schema{
	Type: llm.TypeArray,
	Items: &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"day":       {Type: llm.TypeString, Enum: models.Weekdays},
			"breakfast": plannedMealSchema(),
			"lunch":     plannedMealSchema(),
			"dinner":    plannedMealSchema(),
		},
		Required: []string{"day"},
	},
}

var shoppingListSchema = &llm.Schema{
	Type: llm.TypeArray,
	Items: &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"name":     {Type: llm.TypeString},
			"quantity": {Type: llm.TypeString},
			"category": {Type: llm.TypeString, Enum: categoryEnum()},
		},
		Required: []string{"name", "category"},
	},
}
