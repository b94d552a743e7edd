package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/pkg/clients/llm"
)

// ChatFallback is returned to the user whenever the assistant cannot answer.
const ChatFallback = "I'm having a little trouble in the kitchen right now. Ask me again in a moment!"

const defaultImageMIME = "image/jpeg"

var fencePattern = regexp.MustCompile("```(?:json|JSON)?\\s*")

// AIGateway is the only boundary to the generation service. It never touches kitchen state.
type AIGateway interface {
	ParseReceipt(ctx context.Context, image []byte, mimeType string) ([]models.Ingredient, error)
	GenerateRecipes(ctx context.Context, inventory []models.Ingredient, profile models.UserProfile) ([]models.Recipe, error)
	GenerateMealPlan(ctx context.Context, profile models.UserProfile, inventory []models.Ingredient) ([]models.MealPlanDay, error)
	GenerateShoppingList(ctx context.Context, inventory []models.Ingredient, plan []models.MealPlanDay) ([]models.ShoppingItem, error)
	Chat(ctx context.Context, history []models.ChatMessage, message string, inventory []models.Ingredient) string
}

// Service implements AIGateway over an llm.Model.
type Service struct {
	model  llm.Model
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

var _ AIGateway = (*Service)(nil)

// NewService wires a gateway over the given model client.
func NewService(model llm.Model, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		model:  model,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// ParseReceipt reads grocery items from a receipt image. Items come back without ids; the
// inventory assigns them on append. Any failure is a *models.ReceiptParseError.
func (s *Service) ParseReceipt(ctx context.Context, image []byte, mimeType string) ([]models.Ingredient, error) {
	if len(image) == 0 {
		return nil, &models.ReceiptParseError{Err: errors.New("empty image")}
	}
	if mimeType == "" {
		mimeType = defaultImageMIME
	}

	today := s.now()
	text, err := s.model.Generate(ctx, llm.Request{
		Prompt: receiptPrompt(today),
		Image:  &llm.Image{MIMEType: mimeType, Data: image},
		Schema: receiptSchema,
	})
	if err != nil {
		s.logger.Error("receipt parse call failed", zap.Error(err))
		return nil, &models.ReceiptParseError{Err: err}
	}

	var items []models.Ingredient
	if err := decodeJSON(text, &items); err != nil {
		s.logger.Warn("receipt response malformed", zap.Error(err))
		return nil, &models.ReceiptParseError{Err: err}
	}

	out := make([]models.Ingredient, 0, len(items))
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			continue
		}
		if _, err := item.Expiry(); err != nil {
			item.ExpiryDate = today.AddDate(0, 0, models.DefaultShelfLifeDays).Format(models.DateLayout)
			s.logger.Debug("receipt item without usable expiry, using default shelf life", zap.String("item", item.Name))
		}
		item.ID = ""
		out = append(out, item)
	}
	return out, nil
}

// GenerateRecipes suggests recipes built around the current stock. On failure it returns an
// empty list together with a *models.GenerationError.
func (s *Service) GenerateRecipes(ctx context.Context, inventory []models.Ingredient, profile models.UserProfile) ([]models.Recipe, error) {
	text, err := s.model.Generate(ctx, llm.Request{
		Prompt: recipePrompt(inventory, profile),
		Schema: recipeSchema,
	})
	if err != nil {
		s.logger.Error("recipe generation call failed", zap.Error(err))
		return []models.Recipe{}, &models.GenerationError{Operation: "recipe", Err: err}
	}

	var recipes []models.Recipe
	if err := decodeJSON(text, &recipes); err != nil {
		s.logger.Warn("recipe response malformed", zap.Error(err))
		return []models.Recipe{}, &models.GenerationError{Operation: "recipe", Err: err}
	}

	out := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		r.Title = strings.TrimSpace(r.Title)
		if r.Title == "" {
			continue
		}
		r.ID = s.newID()
		r.MatchScore = clampScore(r.MatchScore)
		out = append(out, r)
	}
	return out, nil
}

// GenerateMealPlan produces a full Monday..Sunday plan. Errors are *models.GenerationError.
func (s *Service) GenerateMealPlan(ctx context.Context, profile models.UserProfile, inventory []models.Ingredient) ([]models.MealPlanDay, error) {
	text, err := s.model.Generate(ctx, llm.Request{
		Prompt: mealPlanPrompt(profile, inventory),
		Schema: mealPlanSchema,
	})
	if err != nil {
		return nil, &models.GenerationError{Operation: "meal plan", Err: err}
	}

	var days []models.MealPlanDay
	if err := decodeJSON(text, &days); err != nil {
		return nil, &models.GenerationError{Operation: "meal plan", Err: err}
	}

	week := models.CanonicalWeek(days)
	if !models.HasMeals(week) {
		return nil, &models.GenerationError{Operation: "meal plan", Err: errors.New("response contained no meals for any weekday")}
	}

	for i := range week {
		for _, t := range models.MealTypes {
			meal := week[i].Slot(t)
			if meal == nil {
				continue
			}
			if strings.TrimSpace(meal.Title) == "" {
				week[i] = week[i].WithSlot(t, nil)
				continue
			}
			withID := *meal
			withID.ID = s.newID()
			week[i] = week[i].WithSlot(t, &withID)
		}
	}
	return week, nil
}

// GenerateShoppingList derives the items missing for the plan. It refuses an empty plan
// before calling out with a *models.PreconditionError.
func (s *Service) GenerateShoppingList(ctx context.Context, inventory []models.Ingredient, plan []models.MealPlanDay) ([]models.ShoppingItem, error) {
	if !models.HasMeals(plan) {
		return nil, models.NewPreconditionError("generate a meal plan before building a shopping list")
	}

	text, err := s.model.Generate(ctx, llm.Request{
		Prompt: shoppingListPrompt(inventory, plan),
		Schema: shoppingListSchema,
	})
	if err != nil {
		s.logger.Error("shopping list call failed", zap.Error(err))
		return nil, &models.GenerationError{Operation: "shopping list", Err: err}
	}

	var items []models.ShoppingItem
	if err := decodeJSON(text, &items); err != nil {
		s.logger.Warn("shopping list response malformed", zap.Error(err))
		return nil, &models.GenerationError{Operation: "shopping list", Err: err}
	}

	out := make([]models.ShoppingItem, 0, len(items))
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			continue
		}
		item.ID = s.newID()
		item.Checked = false
		out = append(out, item)
	}
	return out, nil
}

// Chat answers a cooking question. It never fails: errors turn into ChatFallback.
func (s *Service) Chat(ctx context.Context, history []models.ChatMessage, message string, inventory []models.Ingredient) string {
	turns := make([]llm.Turn, 0, len(history))
	for _, msg := range history {
		role := llm.RoleUser
		if msg.Role == models.RoleModel {
			role = llm.RoleModel
		}
		turns = append(turns, llm.Turn{Role: role, Text: msg.Text})
	}

	reply, err := s.model.Generate(ctx, llm.Request{
		System:  chatSystemPrompt(inventory),
		Prompt:  message,
		History: trimLeadingModelTurns(turns),
	})
	if err != nil {
		s.logger.Error("chat call failed", zap.Error(err))
		return ChatFallback
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return ChatFallback
	}
	return reply
}

// trimLeadingModelTurns drops greeting turns that precede the first user turn; chat
// histories must open with the user.
func trimLeadingModelTurns(turns []llm.Turn) []llm.Turn {
	for i, t := range turns {
		if t.Role == llm.RoleUser {
			return turns[i:]
		}
	}
	return nil
}

// cleanJSON strips markdown code fences that models sometimes wrap around JSON.
func cleanJSON(text string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))
}

func decodeJSON(text string, v any) error {
	cleaned := cleanJSON(text)
	if cleaned == "" {
		return errors.New("empty response")
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("failed to unmarshal ai response: %w", err)
	}
	return nil
}

func clampScore(score *float64) *float64 {
	if score == nil {
		return nil
	}
	v := *score
	switch {
	case v < 0:
		v = 0
	case v > 100:
		v = 100
	}
	return &v
}
