package slots

import (
	"context"
	"errors"
	"sync"
)

// Slot names the independently persisted root collections.
type Slot string

const (
	Inventory    Slot = "inventory"
	Profile      Slot = "profile"
	MealPlan     Slot = "mealPlan"
	Recipes      Slot = "recipes"
	SavedRecipes Slot = "savedRecipes"
	ShoppingList Slot = "shoppingList"
)

// All lists every slot in load order.
var All = []Slot{Inventory, Profile, MealPlan, Recipes, SavedRecipes, ShoppingList}

// ErrNotFound is returned by Load when a slot has never been written.
var ErrNotFound = errors.New("slot not found")

// Store persists the serialized form of each root collection under its slot name.
// Every Save overwrites the whole slot.
type Store interface {
	Load(ctx context.Context, slot Slot) ([]byte, error)
	Save(ctx context.Context, slot Slot, payload []byte) error
	Close(ctx context.Context) error
}

// MemoryStore keeps slots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[Slot][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[Slot][]byte)}
}

// Load returns a copy of the stored payload.
func (m *MemoryStore) Load(_ context.Context, slot Slot) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.slots[slot]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), payload...), nil
}

// Save replaces the slot contents.
func (m *MemoryStore) Save(_ context.Context, slot Slot, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = append([]byte(nil), payload...)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close(context.Context) error { return nil }
