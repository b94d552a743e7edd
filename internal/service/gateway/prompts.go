package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/kitchen/internal/domain/models"
)

const defaultMaxCookingTime = 60

func receiptPrompt(today time.Time) string {
	return fmt.Sprintf(`Analyze this grocery receipt and extract the purchased items as ingredients.
Today is %s.
For each item decide:
- a likely category (produce, dairy, meat, pantry, frozen, other)
- a standard quantity such as "1 unit" or "500g"
- an estimated expiry date (YYYY-MM-DD) counted from today based on the type of food (fresh produce about 7 days, pantry goods about 180 days)
- approximate calories per unit when known
Return a JSON array.`, today.Format(models.DateLayout))
}

func recipePrompt(inventory []models.Ingredient, profile models.UserProfile) string {
	stock := make([]string, 0, len(inventory))
	for _, item := range inventory {
		stock = append(stock, strings.TrimSpace(item.Quantity+" "+item.Name))
	}
	profileJSON, _ := json.Marshal(profile)

	return fmt.Sprintf(`I have these ingredients: %s.
My profile: %s.

Suggest 3 creative recipes that prioritize using my existing stock to reduce waste.
Take into account my cuisine preferences (%s) and maximum cooking time (%d minutes).
Respect my dietary restrictions and never use my allergens.
Rate each recipe with a matchScore (0-100) based on how many ingredients I already have versus need to buy.
Return JSON.`, strings.Join(stock, ", "), string(profileJSON), cuisines(profile), maxCookingTime(profile))
}

func mealPlanPrompt(profile models.UserProfile, inventory []models.Ingredient) string {
	names := ingredientNames(inventory)
	return fmt.Sprintf(`Create a 7-day meal plan (Monday to Sunday) for a user with these attributes:
- Goals: %s
- Diet: %s
- Allergies: %s
- Cuisines: %s
- Household size: %d
- Max cooking time: %d minutes per meal

Available ingredients: %s.
Prioritize using available ingredients to reduce waste.
Keep meals culturally relevant to the preferred cuisines and within the time limit.

Return a JSON array with one object per day. Each object has a day (weekday name) and
breakfast, lunch and dinner objects with title, calories, prepTime, cookTime and ingredients.`,
		profile.Goals,
		listOrNone(profile.DietaryRestrictions),
		listOrNone(profile.Allergies),
		cuisines(profile),
		profile.HouseholdSize,
		maxCookingTime(profile),
		strings.Join(names, ", "))
}

func shoppingListPrompt(inventory []models.Ingredient, plan []models.MealPlanDay) string {
	stock := make([]string, 0, len(inventory))
	for _, item := range inventory {
		stock = append(stock, strings.TrimSpace(item.Quantity+" "+item.Name))
	}

	var details strings.Builder
	for _, day := range plan {
		meals := day.Meals()
		if len(meals) == 0 {
			continue
		}
		parts := make([]string, 0, len(meals))
		for _, meal := range meals {
			parts = append(parts, fmt.Sprintf("%s (%s)", meal.Title, mealIngredients(meal)))
		}
		fmt.Fprintf(&details, "%s: %s\n", day.Day, strings.Join(parts, "; "))
	}

	return fmt.Sprintf(`I have this inventory: %s.

I have this meal plan for the week:
%s
Create a consolidated shopping list for items I am missing or likely don't have enough of to cook these meals.
Do not include basic staples like water, salt, pepper unless explicitly needed in large quantities.
Return a JSON array of objects with: name, quantity, category (produce, dairy, meat, pantry, frozen, other).`,
		strings.Join(stock, ", "), details.String())
}

func chatSystemPrompt(inventory []models.Ingredient) string {
	return fmt.Sprintf(`You are an expert Chef and Nutritionist AI. The user has these ingredients in stock: %s.
Answer cooking questions, suggest substitutions, and help with techniques. Keep answers concise and helpful.`,
		strings.Join(ingredientNames(inventory), ", "))
}

func ingredientNames(inventory []models.Ingredient) []string {
	names := make([]string, 0, len(inventory))
	for _, item := range inventory {
		names = append(names, item.Name)
	}
	return names
}

func mealIngredients(r models.Recipe) string {
	if len(r.Ingredients) == 0 {
		return "ingredients unknown"
	}
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
	}
	return strings.Join(names, ", ")
}

func cuisines(p models.UserProfile) string {
	if len(p.CuisinePreferences) == 0 {
		return "Any"
	}
	return strings.Join(p.CuisinePreferences, ", ")
}

func maxCookingTime(p models.UserProfile) int {
	if p.MaxCookingTime <= 0 {
		return defaultMaxCookingTime
	}
	return p.MaxCookingTime
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
