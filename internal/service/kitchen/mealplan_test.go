package kitchen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/kitchen/internal/domain/models"
)

func calories(v float64) *float64 { return &v }

func generatedWeek(title string) []models.MealPlanDay {
	week := models.EmptyWeek()
	for i := range week {
		week[i].Dinner = &models.Recipe{ID: title + "-" + week[i].Day, Title: title, Calories: calories(600)}
	}
	return week
}

func TestGenerateMealPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the whole week", func(t *testing.T) {
		ai := new(MockGateway)
		svc := newTestKitchen(t, ai, nil)
		_, err := svc.ManualEntry(ctx, "Monday", models.MealBreakfast, "Toast")
		require.NoError(t, err)
		ai.On("GenerateMealPlan", ctx, mock.Anything, mock.Anything).Return(generatedWeek("Curry"), nil)

		week, err := svc.GenerateMealPlan(ctx)

		require.NoError(t, err)
		assert.Equal(t, generatedWeek("Curry"), week)
		assert.Equal(t, generatedWeek("Curry"), svc.MealPlan())
		assert.Nil(t, svc.MealPlan()[0].Breakfast, "manual entries do not survive a regeneration")
		assert.Equal(t, StateSucceeded, svc.Status()[OpMealPlan].State)
	})

	t.Run("failure leaves the plan unchanged", func(t *testing.T) {
		ai := new(MockGateway)
		svc := newTestKitchen(t, ai, nil)
		_, err := svc.ManualEntry(ctx, "Friday", models.MealLunch, "Sandwich")
		require.NoError(t, err)
		before := svc.MealPlan()
		ai.On("GenerateMealPlan", ctx, mock.Anything, mock.Anything).
			Return(nil, &models.GenerationError{Operation: "meal plan", Err: errors.New("timeout")})

		_, err = svc.GenerateMealPlan(ctx)

		var genErr *models.GenerationError
		assert.ErrorAs(t, err, &genErr)
		assert.Equal(t, before, svc.MealPlan())
		assert.Equal(t, StateFailed, svc.Status()[OpMealPlan].State)
	})

	t.Run("a superseded result is discarded", func(t *testing.T) {
		ai := new(MockGateway)
		svc := newTestKitchen(t, ai, nil)

		started := make(chan struct{})
		release := make(chan struct{})
		ai.On("GenerateMealPlan", mock.Anything, mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(generatedWeek("Old"), nil).Once()
		ai.On("GenerateMealPlan", mock.Anything, mock.Anything, mock.Anything).
			Return(generatedWeek("New"), nil).Once()

		done := make(chan error, 1)
		go func() {
			_, err := svc.GenerateMealPlan(ctx)
			done <- err
		}()
		<-started
		assert.True(t, svc.Status()[OpMealPlan].Pending())

		_, err := svc.GenerateMealPlan(ctx)
		require.NoError(t, err)
		close(release)
		require.NoError(t, <-done)

		assert.Equal(t, generatedWeek("New"), svc.MealPlan())
		assert.Equal(t, StateSucceeded, svc.Status()[OpMealPlan].State)
	})
}

func TestClearWeek(t *testing.T) {
	ctx := context.Background()
	svc := newTestKitchen(t, new(MockGateway), nil)
	_, err := svc.ManualEntry(ctx, "Sunday", models.MealDinner, "Roast")
	require.NoError(t, err)

	err = svc.ClearWeek(ctx, false)
	var pre *models.PreconditionError
	assert.ErrorAs(t, err, &pre)
	assert.True(t, models.HasMeals(svc.MealPlan()))

	require.NoError(t, svc.ClearWeek(ctx, true))
	assert.Equal(t, models.EmptyWeek(), svc.MealPlan())
}

func TestAssignMeal(t *testing.T) {
	ctx := context.Background()
	svc := newTestKitchen(t, new(MockGateway), nil)

	recipe := models.Recipe{ID: "r1", Title: "Pasta", Calories: calories(700), Tags: []string{"quick"}}
	require.NoError(t, svc.AssignMeal(ctx, "wednesday", models.MealDinner, recipe))

	recipe.Title = "Changed"
	recipe.Tags[0] = "changed"

	week := svc.MealPlan()
	require.NotNil(t, week[2].Dinner)
	assert.Equal(t, "Pasta", week[2].Dinner.Title, "the plan holds a copy")
	assert.Equal(t, []string{"quick"}, week[2].Dinner.Tags)

	err := svc.AssignMeal(ctx, "Someday", models.MealDinner, recipe)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	err = svc.AssignMeal(ctx, "Monday", "brunch", recipe)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestAssignRecipeByID(t *testing.T) {
	ctx := context.Background()
	ai := new(MockGateway)
	svc := newTestKitchen(t, ai, nil)
	ai.On("GenerateRecipes", ctx, mock.Anything, mock.Anything).
		Return([]models.Recipe{{ID: "r1", Title: "Stir fry", Calories: calories(450)}}, nil)
	_, err := svc.GenerateRecipes(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.AssignRecipeByID(ctx, "Thursday", models.MealLunch, "r1"))
	assert.Equal(t, "Stir fry", svc.MealPlan()[3].Lunch.Title)

	err = svc.AssignRecipeByID(ctx, "Thursday", models.MealLunch, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestManualEntry(t *testing.T) {
	ctx := context.Background()
	svc := newTestKitchen(t, new(MockGateway), nil)

	recipe, err := svc.ManualEntry(ctx, "Tuesday", models.MealDinner, "Leftover pasta")

	require.NoError(t, err)
	require.NotNil(t, recipe)
	dinner := svc.MealPlan()[1].Dinner
	require.NotNil(t, dinner)
	assert.Equal(t, "Leftover pasta", dinner.Title)
	assert.Equal(t, 0.0, dinner.CalorieCount())
	assert.Equal(t, "Manually added meal", dinner.Description)
	assert.Equal(t, []string{"manual"}, dinner.Tags)
	assert.NotEmpty(t, dinner.ID)

	recipe, err = svc.ManualEntry(ctx, "Tuesday", models.MealDinner, "   ")
	require.NoError(t, err)
	assert.Nil(t, recipe)
	assert.Nil(t, svc.MealPlan()[1].Dinner)
}

func TestClearMeal(t *testing.T) {
	ctx := context.Background()
	svc := newTestKitchen(t, new(MockGateway), nil)
	_, err := svc.ManualEntry(ctx, "Saturday", models.MealBreakfast, "Pancakes")
	require.NoError(t, err)

	require.NoError(t, svc.ClearMeal(ctx, "Saturday", models.MealBreakfast))

	assert.False(t, models.HasMeals(svc.MealPlan()))
}

func TestDayCalories(t *testing.T) {
	ctx := context.Background()
	svc := newTestKitchen(t, new(MockGateway), nil)
	require.NoError(t, svc.AssignMeal(ctx, "Monday", models.MealBreakfast, models.Recipe{ID: "a", Title: "Oats", Calories: calories(350)}))
	require.NoError(t, svc.AssignMeal(ctx, "Monday", models.MealDinner, models.Recipe{ID: "b", Title: "Steak", Calories: calories(900)}))
	_, err := svc.ManualEntry(ctx, "Monday", models.MealLunch, "Snack")
	require.NoError(t, err)

	total, err := svc.DayCalories("monday")
	require.NoError(t, err)
	assert.Equal(t, 1250.0, total)

	total, err = svc.DayCalories("Tuesday")
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = svc.DayCalories("Funday")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
