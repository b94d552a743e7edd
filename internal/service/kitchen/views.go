package kitchen

import (
	"time"

	"github.com/mamadbah2/kitchen/internal/domain/models"
)

// CategoryCount is one bar of the category distribution.
type CategoryCount struct {
	Category models.Category `json:"category"`
	Count    int             `json:"count"`
}

// DayCalories is the calorie total of one planned day.
type DayCalories struct {
	Day      string  `json:"day"`
	Calories float64 `json:"calories,omitempty"`
}

// Dashboard summarizes the inventory.
type Dashboard struct {
	TotalItems    int             `json:"totalItems"`
	ExpiringSoon  int             `json:"expiringSoon"`
	Categories    []CategoryCount `json:"categories"`
	SavedRecipes  int             `json:"savedRecipes"`
	PlannedMeals  int             `json:"plannedMeals"`
	ShoppingItems int             `json:"shoppingItems"`
}

// CategoryDistribution counts items per category, in order of first occurrence.
func CategoryDistribution(inventory []models.Ingredient) []CategoryCount {
	out := make([]CategoryCount, 0)
	index := make(map[models.Category]int)
	for _, item := range inventory {
		if i, ok := index[item.Category]; ok {
			out[i].Count++
			continue
		}
		index[item.Category] = len(out)
		out = append(out, CategoryCount{Category: item.Category, Count: 1})
	}
	return out
}

// ExpiringSoon returns the items expiring within models.ExpiringSoonDays of asOf.
func ExpiringSoon(inventory []models.Ingredient, asOf time.Time) []models.Ingredient {
	out := make([]models.Ingredient, 0)
	for _, item := range inventory {
		if models.IsExpiringSoon(item, asOf) {
			out = append(out, item)
		}
	}
	return out
}

// ExpiringSoonCount is len(ExpiringSoon(inventory, asOf)).
func ExpiringSoonCount(inventory []models.Ingredient, asOf time.Time) int {
	return len(ExpiringSoon(inventory, asOf))
}

// WeekCalories lists the calorie total of each day of a canonical week.
func WeekCalories(week []models.MealPlanDay) []DayCalories {
	out := make([]DayCalories, 0, len(week))
	for _, day := range week {
		out = append(out, DayCalories{Day: day.Day, Calories: day.TotalCalories()})
	}
	return out
}

// ExpiringSoon returns the stock expiring within the alert window as of now.
func (s *Service) ExpiringSoon() []models.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExpiringSoon(cloneIngredients(s.inventory), s.now())
}

// Dashboard computes the overview figures as of now.
func (s *Service) Dashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	planned := 0
	for _, day := range models.CanonicalWeek(s.mealPlan) {
		planned += len(day.Meals())
	}
	return Dashboard{
		TotalItems:    len(s.inventory),
		ExpiringSoon:  ExpiringSoonCount(s.inventory, s.now()),
		Categories:    CategoryDistribution(s.inventory),
		SavedRecipes:  len(s.recipes.saved),
		PlannedMeals:  planned,
		ShoppingItems: len(s.shopping),
	}
}

// Status reports the latest request state of every gateway operation.
func (s *Service) Status() map[Operation]RequestStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests.snapshot()
}
