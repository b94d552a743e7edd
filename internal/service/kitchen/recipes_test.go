package kitchen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/internal/repository/slots"
)

func recipesKitchen(t *testing.T, recipes ...models.Recipe) (*Service, *MockGateway) {
	t.Helper()
	ai := new(MockGateway)
	svc := newTestKitchen(t, ai, nil)
	ai.On("GenerateRecipes", mock.Anything, mock.Anything, mock.Anything).Return(recipes, nil).Once()
	_, err := svc.GenerateRecipes(context.Background())
	require.NoError(t, err)
	return svc, ai
}

func recipeIDs(recipes []models.Recipe) []string {
	ids := make([]string, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestGenerateRecipes(t *testing.T) {
	ctx := context.Background()

	t.Run("refused on an empty inventory", func(t *testing.T) {
		ai := new(MockGateway)
		store := slots.NewMemoryStore()
		seedSlot(t, store, slots.Inventory, `[]`)
		svc := newTestKitchen(t, ai, store)

		_, err := svc.GenerateRecipes(ctx)

		var pre *models.PreconditionError
		assert.ErrorAs(t, err, &pre)
		ai.AssertNotCalled(t, "GenerateRecipes", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("new results go first", func(t *testing.T) {
		svc, ai := recipesKitchen(t, models.Recipe{ID: "a", Title: "A"})
		ai.On("GenerateRecipes", ctx, mock.Anything, models.DefaultProfile()).
			Return([]models.Recipe{{ID: "b", Title: "B"}, {ID: "c", Title: "C"}}, nil).Once()

		_, err := svc.GenerateRecipes(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c", "a"}, recipeIDs(svc.DiscoveredRecipes()))
	})

	t.Run("failure keeps the discovered list", func(t *testing.T) {
		svc, ai := recipesKitchen(t, models.Recipe{ID: "a", Title: "A"})
		ai.On("GenerateRecipes", ctx, mock.Anything, mock.Anything).
			Return([]models.Recipe{}, &models.GenerationError{Operation: "recipe", Err: errors.New("quota")}).Once()

		recipes, err := svc.GenerateRecipes(ctx)

		assert.Empty(t, recipes)
		var genErr *models.GenerationError
		assert.ErrorAs(t, err, &genErr)
		assert.Equal(t, []string{"a"}, recipeIDs(svc.DiscoveredRecipes()))
	})
}

func TestSaveAndUnsaveRecipe(t *testing.T) {
	ctx := context.Background()
	svc, _ := recipesKitchen(t, models.Recipe{ID: "a", Title: "A"}, models.Recipe{ID: "b", Title: "B"})

	require.NoError(t, svc.SaveRecipe(ctx, "b"))
	require.NoError(t, svc.SaveRecipe(ctx, "b"))
	assert.Equal(t, []string{"b"}, recipeIDs(svc.SavedRecipes()), "saving twice keeps one copy")
	assert.True(t, svc.IsSaved("b"))
	assert.False(t, svc.IsSaved("a"))

	assert.ErrorIs(t, svc.SaveRecipe(ctx, "zzz"), models.ErrNotFound)

	assert.True(t, svc.UnsaveRecipe(ctx, "b"))
	assert.False(t, svc.UnsaveRecipe(ctx, "b"))
	assert.Empty(t, svc.SavedRecipes())
	assert.Equal(t, []string{"a", "b"}, recipeIDs(svc.DiscoveredRecipes()))
}

func TestRemoveDiscoveredRecipe(t *testing.T) {
	ctx := context.Background()
	svc, _ := recipesKitchen(t, models.Recipe{ID: "a", Title: "A"}, models.Recipe{ID: "b", Title: "B"})
	require.NoError(t, svc.SaveRecipe(ctx, "a"))

	assert.True(t, svc.RemoveDiscoveredRecipe(ctx, "a"))
	assert.False(t, svc.RemoveDiscoveredRecipe(ctx, "a"))

	assert.Equal(t, []string{"b"}, recipeIDs(svc.DiscoveredRecipes()))
	assert.Equal(t, []string{"a"}, recipeIDs(svc.SavedRecipes()), "the saved copy survives")

	// once unsaved as well, the record is gone
	assert.True(t, svc.UnsaveRecipe(ctx, "a"))
	assert.ErrorIs(t, svc.AssignRecipeByID(ctx, "Monday", models.MealLunch, "a"), models.ErrNotFound)
}

func TestSearchRecipes(t *testing.T) {
	svc, _ := recipesKitchen(t,
		models.Recipe{ID: "a", Title: "Chicken Curry", Ingredients: []models.RecipeIngredient{{Name: "Chicken"}, {Name: "Coconut milk"}}},
		models.Recipe{ID: "b", Title: "Veggie Bowl", Ingredients: []models.RecipeIngredient{{Name: "Chickpeas"}}},
		models.Recipe{ID: "c", Title: "Toast"},
	)
	before := svc.DiscoveredRecipes()

	assert.Equal(t, []string{"a", "b"}, recipeIDs(svc.SearchRecipes("chick")))
	assert.Equal(t, []string{"a"}, recipeIDs(svc.SearchRecipes("COCONUT")))
	assert.Len(t, svc.SearchRecipes(""), 3)
	assert.Empty(t, svc.SearchRecipes("sushi"))
	assert.Equal(t, before, svc.DiscoveredRecipes(), "search never changes state")
}
