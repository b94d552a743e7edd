package gateway

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/pkg/clients/llm"
)

// MockModel is a mock implementation of llm.Model
type MockModel struct {
	mock.Mock
}

func (m *MockModel) Generate(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func newTestService(model llm.Model) *Service {
	svc := NewService(model, nil)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc
}

func TestCleanJSON(t *testing.T) {
	tests := map[string]string{
		"```json\n[1,2]\n```": "[1,2]",
		"```\n{\"a\":1}```":    `{"a":1}`,
		"  [] ":                "[]",
		"```JSON [3]```":       "[3]",
	}
	for in, want := range tests {
		assert.Equal(t, want, cleanJSON(in))
	}
}

func TestParseReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes items and fills missing expiry", func(t *testing.T) {
		model := new(MockModel)
		model.On("Generate", ctx, mock.MatchedBy(func(req llm.Request) bool {
			return req.Image != nil && req.Image.MIMEType == "image/png" && req.Schema == receiptSchema
		})).Return("```json\n"+`[
			{"name":"Milk","quantity":"1L","category":"dairy","expiryDate":"2024-01-06"},
			{"name":"Apples","quantity":"6","category":"Produce","expiryDate":"next week"},
			{"name":" ","quantity":"1","category":"other","expiryDate":"2024-01-06"}
		]`+"\n```", nil)

		items, err := newTestService(model).ParseReceipt(ctx, []byte("png"), "image/png")

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Empty(t, items[0].ID)
		assert.Equal(t, "2024-01-06", items[0].ExpiryDate)
		assert.Equal(t, models.CategoryProduce, items[1].Category)
		assert.Equal(t, "2024-01-08", items[1].ExpiryDate)
		model.AssertExpectations(t)
	})

	t.Run("call failure is a receipt parse error", func(t *testing.T) {
		model := new(MockModel)
		model.On("Generate", ctx, mock.Anything).Return("", errors.New("boom"))

		_, err := newTestService(model).ParseReceipt(ctx, []byte("img"), "")

		var parseErr *models.ReceiptParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("malformed content is a receipt parse error", func(t *testing.T) {
		model := new(MockModel)
		model.On("Generate", ctx, mock.Anything).Return("Sorry, I cannot read this.", nil)

		_, err := newTestService(model).ParseReceipt(ctx, []byte("img"), "image/jpeg")

		var parseErr *models.ReceiptParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("empty image never calls the model", func(t *testing.T) {
		model := new(MockModel)

		_, err := newTestService(model).ParseReceipt(ctx, nil, "image/jpeg")

		var parseErr *models.ReceiptParseError
		assert.ErrorAs(t, err, &parseErr)
		model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})
}

func TestGenerateRecipes(t *testing.T) {
	ctx := context.Background()
	inventory := models.DefaultInventory()
	profile := models.DefaultProfile()

	t.Run("success", func(t *testing.T) {
		model := new(MockModel)
		model.On("Generate", ctx, mock.MatchedBy(func(req llm.Request) bool {
			return req.Schema == recipeSchema &&
				assert.Contains(t, req.Prompt, "12 Eggs") &&
				assert.Contains(t, req.Prompt, "Italian") &&
				assert.Contains(t, req.Prompt, "45 minutes")
		})).Return(`[{"title":"Fried Rice","matchScore":140,"calories":520},{"title":"Omelette","matchScore":80}]`, nil)

		recipes, err := newTestService(model).GenerateRecipes(ctx, inventory, profile)

		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, "id-1", recipes[0].ID)
		assert.Equal(t, 100.0, *recipes[0].MatchScore)
		assert.Equal(t, 80.0, *recipes[1].MatchScore)
	})

	t.Run("failure yields empty list and generation error", func(t *testing.T) {
		model := new(MockModel)
		model.On("Generate", ctx, mock.Anything).Return("", errors.New("quota"))

		recipes, err := newTestService(model).GenerateRecipes(ctx, inventory, profile)

		assert.Empty(t, recipes)
		var genErr *models.GenerationError
		assert.ErrorAs(t, err, &genErr)
	})
}

func TestGenerateMealPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes to seven canonical days with fresh ids", func(t *testing.T) {
		model := new(MockModel)
		model.On("Generate", ctx, mock.Anything).Return(`[
			{"day":"Tuesday","lunch":{"title":"Soup","calories":300}},
			{"day":"Monday","breakfast":{"title":"Oats","calories":350},"dinner":{"title":""}}
		]`, nil)

		week, err := newTestService(model).GenerateMealPlan(ctx, models.DefaultProfile(), models.DefaultInventory())

		require.NoError(t, err)
		require.Len(t, week, 7)
		assert.Equal(t, "Monday", week[0].Day)
		require.NotNil(t, week[0].Breakfast)
		assert.NotEmpty(t, week[0].Breakfast.ID)
		assert.Nil(t, week[0].Dinner, "untitled meals are dropped")
		require.NotNil(t, week[1].Lunch)
		assert.NotEqual(t, week[0].Breakfast.ID, week[1].Lunch.ID)
		assert.True(t, week[6].IsEmpty())
	})

	t.Run("errors propagate as generation errors", func(t *testing.T) {
		model := new(MockModel)
		model.On("Generate", ctx, mock.Anything).Return("", errors.New("timeout"))

		_, err := newTestService(model).GenerateMealPlan(ctx, models.DefaultProfile(), nil)

		var genErr *models.GenerationError
		assert.ErrorAs(t, err, &genErr)
	})

	t.Run("plan without meals is malformed", func(t *testing.T) {
		model := new(MockModel)
		model.On("Generate", ctx, mock.Anything).Return(`[{"day":"Caturday"}]`, nil)

		_, err := newTestService(model).GenerateMealPlan(ctx, models.DefaultProfile(), nil)

		var genErr *models.GenerationError
		assert.ErrorAs(t, err, &genErr)
	})
}

func TestGenerateShoppingList(t *testing.T) {
	ctx := context.Background()
	plan := []models.MealPlanDay{{Day: "Monday", Dinner: &models.Recipe{Title: "Risotto", Ingredients: []models.RecipeIngredient{{Name: "Arborio rice"}}}}}

	t.Run("empty plan is refused before any call", func(t *testing.T) {
		model := new(MockModel)

		_, err := newTestService(model).GenerateShoppingList(ctx, nil, nil)
		var pre *models.PreconditionError
		assert.ErrorAs(t, err, &pre)

		_, err = newTestService(model).GenerateShoppingList(ctx, nil, models.EmptyWeek())
		assert.ErrorAs(t, err, &pre)
		model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("items are unchecked with fresh ids", func(t *testing.T) {
		model := new(MockModel)
		model.On("Generate", ctx, mock.MatchedBy(func(req llm.Request) bool {
			return assert.Contains(t, req.Prompt, "Monday: Risotto (Arborio rice)")
		})).Return(`[{"name":"Parmesan","quantity":"100g","category":"dairy","checked":true},{"name":"Stock","category":"soup"}]`, nil)

		items, err := newTestService(model).GenerateShoppingList(ctx, nil, plan)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "id-1", items[0].ID)
		assert.False(t, items[0].Checked)
		assert.Equal(t, models.CategoryOther, items[1].Category)
	})
}

func TestChat(t *testing.T) {
	ctx := context.Background()
	history := []models.ChatMessage{
		{Role: models.RoleModel, Text: models.AssistantGreeting},
		{Role: models.RoleUser, Text: "Hi"},
		{Role: models.RoleModel, Text: "Hello, what are we cooking?"},
	}

	t.Run("passes history and inventory context", func(t *testing.T) {
		model := new(MockModel)
		model.On("Generate", ctx, mock.MatchedBy(func(req llm.Request) bool {
			return len(req.History) == 2 &&
				req.History[0].Role == llm.RoleUser &&
				assert.Contains(t, req.System, "Eggs, Spinach") &&
				req.Prompt == "Substitute for rice?"
		})).Return(" Try quinoa. ", nil)

		reply := newTestService(model).Chat(ctx, history, "Substitute for rice?", models.DefaultInventory())

		assert.Equal(t, "Try quinoa.", reply)
	})

	t.Run("failure becomes the fallback reply", func(t *testing.T) {
		model := new(MockModel)
		model.On("Generate", ctx, mock.Anything).Return("", errors.New("down"))

		reply := newTestService(model).Chat(ctx, history, "Hi again", nil)

		assert.Equal(t, ChatFallback, reply)
	})
}
