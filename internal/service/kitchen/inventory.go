package kitchen

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/domain/models"
)

// Inventory returns the current stock in insertion order.
func (s *Service) Inventory() []models.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneIngredients(s.inventory)
}

// SearchInventory returns the items whose name contains term, ignoring case.
func (s *Service) SearchInventory(term string) []models.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()

	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Ingredient, 0)
	for _, item := range cloneIngredients(s.inventory) {
		if strings.Contains(strings.ToLower(item.Name), term) {
			out = append(out, item)
		}
	}
	return out
}

// ScanReceipt reads a receipt image through the gateway and stocks the parsed items.
// A failed scan leaves the inventory unchanged.
func (s *Service) ScanReceipt(ctx context.Context, image []byte, mimeType string) ([]models.Ingredient, error) {
	s.mu.Lock()
	token := s.requests.begin(OpReceipt, s.now())
	s.mu.Unlock()

	items, err := s.ai.ParseReceipt(ctx, image, mimeType)

	s.mu.Lock()
	s.requests.finish(OpReceipt, token, err, s.now())
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.AddFromReceipt(ctx, items), nil
}

// AddFromReceipt appends parsed receipt items to the stock, each under a fresh id, and
// returns the stored items.
func (s *Service) AddFromReceipt(ctx context.Context, items []models.Ingredient) []models.Ingredient {
	s.mu.Lock()
	added := make([]models.Ingredient, 0, len(items))
	for _, item := range items {
		item.ID = s.newID()
		item.Category = models.NormalizeCategory(string(item.Category))
		added = append(added, item)
	}
	if len(added) == 0 {
		s.mu.Unlock()
		return added
	}
	s.inventory = append(s.inventory, added...)
	snapshot := s.inventoryChanged(ctx)
	s.mu.Unlock()

	s.logger.Info("items added from receipt", zap.Int("count", len(added)))
	s.notifyInventory(ctx, snapshot)
	return cloneIngredients(added)
}

// RemoveIngredient deletes the item with the given id. It reports whether anything was removed.
func (s *Service) RemoveIngredient(ctx context.Context, id string) bool {
	s.mu.Lock()
	idx := slices.IndexFunc(s.inventory, func(item models.Ingredient) bool { return item.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.inventory = slices.Delete(s.inventory, idx, idx+1)
	snapshot := s.inventoryChanged(ctx)
	s.mu.Unlock()

	s.notifyInventory(ctx, snapshot)
	return true
}
