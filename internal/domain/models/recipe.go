package models

import "strings"

// ManualTag marks recipes typed in by hand rather than generated.
const ManualTag = "manual"

// RecipeIngredient is one line of a recipe's ingredient list.
type RecipeIngredient struct {
	Name   string `json:"name" bson:"name"`
	Amount string `json:"amount" bson:"amount"`
}

// Recipe is a generated or manually entered dish.
type Recipe struct {
	ID           string             `json:"id" bson:"id"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	Ingredients  []RecipeIngredient `json:"ingredients,omitempty" bson:"ingredients,omitempty"`
	Instructions []string           `json:"instructions,omitempty" bson:"instructions,omitempty"`
	PrepTime     *int               `json:"prepTime,omitempty" bson:"prep_time,omitempty"`
	CookTime     *int               `json:"cookTime,omitempty" bson:"cook_time,omitempty"`
	Calories     *float64           `json:"calories,omitempty" bson:"calories,omitempty"`
	MatchScore   *float64           `json:"matchScore,omitempty" bson:"match_score,omitempty"`
	Tags         []string           `json:"tags,omitempty" bson:"tags,omitempty"`
}

// CalorieCount returns the recipe calories, treating an absent value as zero.
func (r Recipe) CalorieCount() float64 {
	if r.Calories == nil {
		return 0
	}
	return *r.Calories
}

// TotalTime is prep plus cook time in minutes.
func (r Recipe) TotalTime() int {
	total := 0
	if r.PrepTime != nil {
		total += *r.PrepTime
	}
	if r.CookTime != nil {
		total += *r.CookTime
	}
	return total
}

// IsManual reports whether the recipe was entered by hand.
func (r Recipe) IsManual() bool {
	for _, tag := range r.Tags {
		if tag == ManualTag {
			return true
		}
	}
	return false
}

// Matches reports whether term occurs in the title or in any ingredient name, ignoring case.
func (r Recipe) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), term) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so that a captured recipe cannot be changed through shared slices.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = append([]RecipeIngredient(nil), r.Ingredients...)
	}
	if r.Instructions != nil {
		out.Instructions = append([]string(nil), r.Instructions...)
	}
	if r.Tags != nil {
		out.Tags = append([]string(nil), r.Tags...)
	}
	if r.PrepTime != nil {
		v := *r.PrepTime
		out.PrepTime = &v
	}
	if r.CookTime != nil {
		v := *r.CookTime
		out.CookTime = &v
	}
	if r.Calories != nil {
		v := *r.Calories
		out.Calories = &v
	}
	if r.MatchScore != nil {
		v := *r.MatchScore
		out.MatchScore = &v
	}
	return out
}

// NewManualRecipe builds the minimal recipe used for a hand-typed meal slot.
func NewManualRecipe(id, title string) Recipe {
	zero := 0.0
	return Recipe{
		ID:          id,
		Title:       title,
		Calories:    &zero,
		Description: "Manually added meal",
		Tags:        []string{ManualTag},
	}
}
