package kitchen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/internal/repository/slots"
	"github.com/mamadbah2/kitchen/internal/service/gateway"
)

// InventoryObserver is invoked with a snapshot of the stock after every inventory change.
type InventoryObserver func(ctx context.Context, inventory []models.Ingredient)

// Service owns the kitchen state. Every transition runs under one lock; the lock is
// released while a gateway call is in flight and the result is applied to the state
// current at resolution time.
type Service struct {
	mu sync.Mutex

	store  slots.Store
	ai     gateway.AIGateway
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	observers []InventoryObserver

	inventory []models.Ingredient
	profile   models.UserProfile
	mealPlan  []models.MealPlanDay
	recipes   *recipeBook
	shopping  []models.ShoppingItem
	chat      []models.ChatMessage
	requests  *tracker
}

// NewService builds the reducer and restores every slot from the store. Slots that are
// missing or unreadable start from their defaults.
func NewService(ctx context.Context, store slots.Store, ai gateway.AIGateway, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:    store,
		ai:       ai,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		recipes:  newRecipeBook(),
		requests: newTracker(),
	}
	s.load(ctx)
	s.chat = []models.ChatMessage{s.greeting()}
	return s
}

// OnInventoryChange registers an observer called after each inventory mutation, outside the lock.
func (s *Service) OnInventoryChange(fn InventoryObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Service) load(ctx context.Context) {
	s.inventory = loadSlot(ctx, s, slots.Inventory, models.DefaultInventory())

	s.profile = loadSlot(ctx, s, slots.Profile, models.DefaultProfile())
	if err := s.profile.Validate(); err != nil {
		s.logger.Warn("stored profile is not valid, using default", zap.Error(err))
		s.profile = models.DefaultProfile()
	}

	s.mealPlan = loadSlot(ctx, s, slots.MealPlan, []models.MealPlanDay{})
	s.recipes.restore(
		loadSlot(ctx, s, slots.Recipes, []models.Recipe{}),
		loadSlot(ctx, s, slots.SavedRecipes, []models.Recipe{}),
	)
	s.shopping = loadSlot(ctx, s, slots.ShoppingList, []models.ShoppingItem{})
}

// loadSlot decodes a stored slot, returning fallback when the slot is missing,
// unreadable or holds a null document.
func loadSlot[T any](ctx context.Context, s *Service, slot slots.Slot, fallback T) T {
	log := s.logger.With(zap.String("slot", string(slot)))

	payload, err := s.store.Load(ctx, slot)
	if err != nil {
		if !errors.Is(err, slots.ErrNotFound) {
			log.Warn("failed to load slot, using default", zap.Error(err))
		}
		return fallback
	}
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return fallback
	}

	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		log.Warn("stored slot is not valid, using default", zap.Error(err))
		return fallback
	}
	return v
}

// persist overwrites one slot with the serialized collection. Callers hold the lock.
// The write outlives a cancelled request so the store never lags the in-memory state.
func (s *Service) persist(ctx context.Context, slot slots.Slot, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode slot", zap.String("slot", string(slot)), zap.Error(err))
		return
	}
	if err := s.store.Save(context.WithoutCancel(ctx), slot, payload); err != nil {
		s.logger.Error("failed to persist slot", zap.String("slot", string(slot)), zap.Error(err))
	}
}

func (s *Service) persistRecipes(ctx context.Context) {
	s.persist(ctx, slots.Recipes, s.recipes.discoveredList())
	s.persist(ctx, slots.SavedRecipes, s.recipes.savedList())
}

// inventoryChanged persists the stock and returns a snapshot for the observers. Callers
// hold the lock and pass the snapshot to notifyInventory once it is released.
func (s *Service) inventoryChanged(ctx context.Context) []models.Ingredient {
	s.persist(ctx, slots.Inventory, s.inventory)
	return cloneIngredients(s.inventory)
}

func (s *Service) notifyInventory(ctx context.Context, snapshot []models.Ingredient) {
	s.mu.Lock()
	observers := append([]InventoryObserver(nil), s.observers...)
	s.mu.Unlock()
	for _, fn := range observers {
		fn(ctx, snapshot)
	}
}

func cloneIngredients(in []models.Ingredient) []models.Ingredient {
	out := make([]models.Ingredient, len(in))
	for i, item := range in {
		if item.CaloriesPerUnit != nil {
			v := *item.CaloriesPerUnit
			item.CaloriesPerUnit = &v
		}
		out[i] = item
	}
	return out
}

func cloneShopping(in []models.ShoppingItem) []models.ShoppingItem {
	return append(make([]models.ShoppingItem, 0, len(in)), in...)
}

func cloneWeek(in []models.MealPlanDay) []models.MealPlanDay {
	out := make([]models.MealPlanDay, len(in))
	for i, day := range in {
		copied := models.MealPlanDay{Day: day.Day}
		for _, t := range models.MealTypes {
			copied = copied.WithSlot(t, day.Slot(t))
		}
		out[i] = copied
	}
	return out
}

func cloneRecipes(in []models.Recipe) []models.Recipe {
	out := make([]models.Recipe, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
