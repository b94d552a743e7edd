package kitchen

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/internal/repository/slots"
)

// MealPlan returns the week as seven days, Monday first. Days the stored plan does not
// mention come back empty.
func (s *Service) MealPlan() []models.MealPlanDay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CanonicalWeek(cloneWeek(s.mealPlan))
}

// DayCalories sums the calories of every filled slot of a weekday.
func (s *Service) DayCalories(day string) (float64, error) {
	name, err := models.ParseWeekday(day)
	if err != nil {
		return 0, err
	}
	for _, d := range s.MealPlan() {
		if d.Day == name {
			return d.TotalCalories(), nil
		}
	}
	return 0, nil
}

// GenerateMealPlan replaces the whole week with a generated plan. When the request fails,
// or a newer request was issued meanwhile, the stored plan is left as it was.
func (s *Service) GenerateMealPlan(ctx context.Context) ([]models.MealPlanDay, error) {
	s.mu.Lock()
	profile := cloneProfile(s.profile)
	inventory := cloneIngredients(s.inventory)
	token := s.requests.begin(OpMealPlan, s.now())
	s.mu.Unlock()

	plan, err := s.ai.GenerateMealPlan(ctx, profile, inventory)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requests.latest(OpMealPlan, token) {
		s.logger.Info("discarding superseded meal plan result", zap.Uint64("token", token))
		if err != nil {
			return nil, err
		}
		return models.CanonicalWeek(cloneWeek(s.mealPlan)), nil
	}
	s.requests.finish(OpMealPlan, token, err, s.now())
	if err != nil {
		return nil, err
	}

	s.mealPlan = cloneWeek(plan)
	s.persist(ctx, slots.MealPlan, s.mealPlan)
	return cloneWeek(s.mealPlan), nil
}

// ClearWeek empties all seven days. It is refused unless the user confirmed.
func (s *Service) ClearWeek(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return models.NewPreconditionError("clearing the week must be confirmed")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mealPlan = models.EmptyWeek()
	s.persist(ctx, slots.MealPlan, s.mealPlan)
	return nil
}

// AssignMeal stores a copy of recipe in one slot. Later edits to the source recipe do not
// reach the plan.
func (s *Service) AssignMeal(ctx context.Context, day string, mealType models.MealType, recipe models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setSlot(ctx, day, mealType, &recipe)
}

// AssignRecipeByID copies a discovered or saved recipe into one slot.
func (s *Service) AssignRecipeByID(ctx context.Context, day string, mealType models.MealType, recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, err := s.findRecipe(recipeID)
	if err != nil {
		return err
	}
	return s.setSlot(ctx, day, mealType, &recipe)
}

// ManualEntry fills a slot with a hand-typed meal. Blank text clears the slot. It returns
// the stored recipe, or nil when the slot was cleared.
func (s *Service) ManualEntry(ctx context.Context, day string, mealType models.MealType, text string) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, s.setSlot(ctx, day, mealType, nil)
	}
	recipe := models.NewManualRecipe(s.newID(), text)
	if err := s.setSlot(ctx, day, mealType, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ClearMeal empties one slot.
func (s *Service) ClearMeal(ctx context.Context, day string, mealType models.MealType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setSlot(ctx, day, mealType, nil)
}

// setSlot rewrites one slot of the canonical week and persists the plan. Callers hold the lock.
func (s *Service) setSlot(ctx context.Context, day string, mealType models.MealType, recipe *models.Recipe) error {
	name, err := models.ParseWeekday(day)
	if err != nil {
		return err
	}
	slot, err := models.ParseMealType(string(mealType))
	if err != nil {
		return err
	}

	week := models.CanonicalWeek(cloneWeek(s.mealPlan))
	idx := slices.Index(models.Weekdays, name)
	week[idx] = week[idx].WithSlot(slot, recipe)

	s.mealPlan = week
	s.persist(ctx, slots.MealPlan, s.mealPlan)
	return nil
}
