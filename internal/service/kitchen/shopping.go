package kitchen

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/internal/repository/slots"
)

// ShoppingList returns the list in insertion order.
func (s *Service) ShoppingList() []models.ShoppingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneShopping(s.shopping)
}

// GenerateShoppingList asks the gateway which ingredients the meal plan still needs and
// appends them to the list. It is refused before any call when the plan has no meals.
func (s *Service) GenerateShoppingList(ctx context.Context) ([]models.ShoppingItem, error) {
	s.mu.Lock()
	if !models.HasMeals(s.mealPlan) {
		s.mu.Unlock()
		return nil, models.NewPreconditionError("generate a meal plan before building a shopping list")
	}
	inventory := cloneIngredients(s.inventory)
	plan := cloneWeek(s.mealPlan)
	token := s.requests.begin(OpShoppingList, s.now())
	s.mu.Unlock()

	items, err := s.ai.GenerateShoppingList(ctx, inventory, plan)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests.finish(OpShoppingList, token, err, s.now())
	if err != nil {
		return nil, err
	}

	s.shopping = append(s.shopping, items...)
	s.persist(ctx, slots.ShoppingList, s.shopping)
	s.logger.Info("shopping list extended", zap.Int("added", len(items)))
	return cloneShopping(items), nil
}

// ToggleChecked flips the checked flag of one item and returns the updated item.
func (s *Service) ToggleChecked(ctx context.Context, id string) (models.ShoppingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.shoppingIndex(id)
	if idx < 0 {
		return models.ShoppingItem{}, fmt.Errorf("shopping item %q: %w", id, models.ErrNotFound)
	}
	s.shopping[idx].Checked = !s.shopping[idx].Checked
	s.persist(ctx, slots.ShoppingList, s.shopping)
	return s.shopping[idx], nil
}

// RemoveShoppingItem deletes one item. It reports whether anything was removed.
func (s *Service) RemoveShoppingItem(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.shoppingIndex(id)
	if idx < 0 {
		return false
	}
	s.shopping = slices.Delete(s.shopping, idx, idx+1)
	s.persist(ctx, slots.ShoppingList, s.shopping)
	return true
}

// MoveCheckedToStock turns every checked item into stock expiring DefaultShelfLifeDays
// from today and removes it from the list, in one step. It returns how many items moved.
func (s *Service) MoveCheckedToStock(ctx context.Context) int {
	s.mu.Lock()
	today := s.now()
	remaining := make([]models.ShoppingItem, 0, len(s.shopping))
	moved := make([]models.Ingredient, 0)
	for _, item := range s.shopping {
		if item.Checked {
			moved = append(moved, item.ToIngredient(today))
			continue
		}
		remaining = append(remaining, item)
	}
	if len(moved) == 0 {
		s.mu.Unlock()
		return 0
	}

	s.inventory = append(s.inventory, moved...)
	s.shopping = remaining
	s.persist(ctx, slots.ShoppingList, s.shopping)
	snapshot := s.inventoryChanged(ctx)
	s.mu.Unlock()

	s.logger.Info("checked items moved to stock", zap.Int("count", len(moved)))
	s.notifyInventory(ctx, snapshot)
	return len(moved)
}

func (s *Service) shoppingIndex(id string) int {
	return slices.IndexFunc(s.shopping, func(item models.ShoppingItem) bool { return item.ID == id })
}
