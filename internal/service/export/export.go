package export

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/domain/models"
	repo "github.com/mamadbah2/kitchen/internal/repository/sheets"
)

const (
	shoppingListRange    = "ShoppingList!A:E"
	shoppingListIDsRange = "ShoppingList!E:E"
	mealPlanRange        = "MealPlan!A:F"
)

// Service copies the shopping list and the meal plan into a spreadsheet.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new export service instance.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger, now: time.Now}
}

// ExportShoppingList appends one row (date, name, quantity, category, id) per unchecked
// item not exported before. It returns the number of rows written.
func (s *Service) ExportShoppingList(ctx context.Context, items []models.ShoppingItem) (int, error) {
	existing, err := s.repo.ReadRange(ctx, shoppingListIDsRange)
	if err != nil {
		return 0, fmt.Errorf("load exported items: %w", err)
	}
	exported := make(map[string]struct{}, len(existing))
	for _, row := range existing {
		if len(row) > 0 {
			exported[fmt.Sprint(row[0])] = struct{}{}
		}
	}

	date := s.now().Format(models.DateLayout)
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		if item.Checked {
			continue
		}
		if _, done := exported[item.ID]; done {
			s.logger.Debug("skip already exported item", zap.String("id", item.ID))
			continue
		}
		rows = append(rows, []any{date, item.Name, item.Quantity, string(item.Category), item.ID})
	}

	if err := s.repo.AppendRows(ctx, shoppingListRange, rows); err != nil {
		return 0, fmt.Errorf("export shopping list: %w", err)
	}
	s.logger.Info("shopping list exported", zap.Int("rows", len(rows)))
	return len(rows), nil
}

// ExportMealPlan appends one row (week of, day, breakfast, lunch, dinner, calories) per
// weekday, Monday first.
func (s *Service) ExportMealPlan(ctx context.Context, plan []models.MealPlanDay) (int, error) {
	week := models.CanonicalWeek(plan)
	weekOf := startOfWeek(s.now()).Format(models.DateLayout)

	rows := make([][]any, 0, len(week))
	for _, day := range week {
		rows = append(rows, []any{
			weekOf,
			day.Day,
			mealTitle(day.Breakfast),
			mealTitle(day.Lunch),
			mealTitle(day.Dinner),
			day.TotalCalories(),
		})
	}

	if err := s.repo.AppendRows(ctx, mealPlanRange, rows); err != nil {
		return 0, fmt.Errorf("export meal plan: %w", err)
	}
	s.logger.Info("meal plan exported", zap.String("week_of", weekOf))
	return len(rows), nil
}

func mealTitle(r *models.Recipe) string {
	if r == nil {
		return ""
	}
	return r.Title
}

// startOfWeek returns the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
