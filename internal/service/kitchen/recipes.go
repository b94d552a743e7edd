package kitchen

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/domain/models"
)

// recipeBook keeps one record per recipe id. Discovered and saved are ordered id lists
// over the same records, so saving never duplicates a recipe and removing it from the
// discovered list keeps the saved copy.
type recipeBook struct {
	records    map[string]models.Recipe
	discovered []string
	saved      []string
}

func newRecipeBook() *recipeBook {
	return &recipeBook{records: make(map[string]models.Recipe)}
}

func (b *recipeBook) restore(discovered, saved []models.Recipe) {
	b.records = make(map[string]models.Recipe, len(discovered)+len(saved))
	b.discovered = b.discovered[:0]
	b.saved = b.saved[:0]
	for _, r := range discovered {
		if _, dup := b.records[r.ID]; dup || r.ID == "" {
			continue
		}
		b.records[r.ID] = r.Clone()
		b.discovered = append(b.discovered, r.ID)
	}
	for _, r := range saved {
		if r.ID == "" || slices.Contains(b.saved, r.ID) {
			continue
		}
		if _, ok := b.records[r.ID]; !ok {
			b.records[r.ID] = r.Clone()
		}
		b.saved = append(b.saved, r.ID)
	}
}

func (b *recipeBook) list(ids []string) []models.Recipe {
	out := make([]models.Recipe, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.records[id].Clone())
	}
	return out
}

func (b *recipeBook) discoveredList() []models.Recipe { return b.list(b.discovered) }

func (b *recipeBook) savedList() []models.Recipe { return b.list(b.saved) }

// prepend puts freshly generated recipes ahead of the existing ones, keeping their order.
func (b *recipeBook) prepend(recipes []models.Recipe) {
	ids := make([]string, 0, len(recipes)+len(b.discovered))
	for _, r := range recipes {
		if _, dup := b.records[r.ID]; dup || r.ID == "" {
			continue
		}
		b.records[r.ID] = r.Clone()
		ids = append(ids, r.ID)
	}
	b.discovered = append(ids, b.discovered...)
}

func (b *recipeBook) find(id string) (models.Recipe, bool) {
	r, ok := b.records[id]
	if !ok {
		return models.Recipe{}, false
	}
	return r.Clone(), true
}

func (b *recipeBook) isSaved(id string) bool {
	return slices.Contains(b.saved, id)
}

func (b *recipeBook) save(id string) bool {
	if _, ok := b.records[id]; !ok {
		return false
	}
	if !b.isSaved(id) {
		b.saved = append(b.saved, id)
	}
	return true
}

func (b *recipeBook) unsave(id string) bool {
	idx := slices.Index(b.saved, id)
	if idx < 0 {
		return false
	}
	b.saved = slices.Delete(b.saved, idx, idx+1)
	b.drop(id)
	return true
}

func (b *recipeBook) removeDiscovered(id string) bool {
	idx := slices.Index(b.discovered, id)
	if idx < 0 {
		return false
	}
	b.discovered = slices.Delete(b.discovered, idx, idx+1)
	b.drop(id)
	return true
}

// drop forgets the record once no list refers to it.
func (b *recipeBook) drop(id string) {
	if slices.Contains(b.discovered, id) || slices.Contains(b.saved, id) {
		return
	}
	delete(b.records, id)
}

// DiscoveredRecipes returns generated recipes, newest first.
func (s *Service) DiscoveredRecipes() []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipes.discoveredList()
}

// SavedRecipes returns the bookmarked recipes in the order they were saved.
func (s *Service) SavedRecipes() []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipes.savedList()
}

// IsSaved reports whether the recipe is bookmarked.
func (s *Service) IsSaved(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipes.isSaved(id)
}

// SearchRecipes filters discovered recipes by title or ingredient name. It never changes state.
func (s *Service) SearchRecipes(term string) []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Recipe, 0)
	for _, r := range s.recipes.discoveredList() {
		if r.Matches(term) {
			out = append(out, r)
		}
	}
	return out
}

// GenerateRecipes asks the gateway for recipes that use the current stock and prepends
// them to the discovered list. On failure nothing changes.
func (s *Service) GenerateRecipes(ctx context.Context) ([]models.Recipe, error) {
	s.mu.Lock()
	if len(s.inventory) == 0 {
		s.mu.Unlock()
		return nil, models.NewPreconditionError("add ingredients to your inventory before generating recipes")
	}
	inventory := cloneIngredients(s.inventory)
	profile := cloneProfile(s.profile)
	token := s.requests.begin(OpRecipes, s.now())
	s.mu.Unlock()

	recipes, err := s.ai.GenerateRecipes(ctx, inventory, profile)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests.finish(OpRecipes, token, err, s.now())
	if err != nil {
		return nil, err
	}

	s.recipes.prepend(recipes)
	s.persistRecipes(ctx)
	s.logger.Info("recipes generated", zap.Int("count", len(recipes)))
	return cloneRecipes(recipes), nil
}

// SaveRecipe bookmarks a known recipe. Saving twice keeps a single copy.
func (s *Service) SaveRecipe(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recipes.save(id) {
		return fmt.Errorf("recipe %q: %w", id, models.ErrNotFound)
	}
	s.persistRecipes(ctx)
	return nil
}

// UnsaveRecipe removes a bookmark. It reports whether the recipe was saved.
func (s *Service) UnsaveRecipe(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recipes.unsave(id) {
		return false
	}
	s.persistRecipes(ctx)
	return true
}

// RemoveDiscoveredRecipe drops a recipe from the discovered list. A saved copy stays saved.
func (s *Service) RemoveDiscoveredRecipe(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recipes.removeDiscovered(id) {
		return false
	}
	s.persistRecipes(ctx)
	return true
}

// findRecipe looks a recipe up by id across discovered and saved. Callers hold the lock.
func (s *Service) findRecipe(id string) (models.Recipe, error) {
	r, ok := s.recipes.find(strings.TrimSpace(id))
	if !ok {
		return models.Recipe{}, fmt.Errorf("recipe %q: %w", id, models.ErrNotFound)
	}
	return r, nil
}
