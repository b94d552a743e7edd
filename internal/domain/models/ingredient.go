package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for expiry dates.
const DateLayout = "2006-01-02"

// ExpiringSoonDays is the inclusive upper bound of the "expiring soon" window.
const ExpiringSoonDays = 3

// Category enumerates the storage categories an ingredient or shopping item can belong to.
type Category string

const (
	CategoryProduce Category = "produce"
	CategoryDairy   Category = "dairy"
	CategoryMeat    Category = "meat"
	CategoryPantry  Category = "pantry"
	CategoryFrozen  Category = "frozen"
	CategoryOther   Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryProduce, CategoryDairy, CategoryMeat, CategoryPantry, CategoryFrozen, CategoryOther}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryProduce, CategoryDairy, CategoryMeat, CategoryPantry, CategoryFrozen, CategoryOther:
		return true
	}
	return false
}

// NormalizeCategory maps free text onto the closed category set, falling back to other.
func NormalizeCategory(raw string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c.Valid() {
		return c
	}
	return CategoryOther
}

// UnmarshalJSON accepts any string and normalizes it onto the enumerated set.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = NormalizeCategory(raw)
	return nil
}

// Ingredient is a single stock item in the pantry inventory.
type Ingredient struct {
	ID              string   `json:"id" bson:"id"`
	Name            string   `json:"name" bson:"name"`
	Quantity        string   `json:"quantity" bson:"quantity"`
	Category        Category `json:"category" bson:"category"`
	ExpiryDate      string   `json:"expiryDate" bson:"expiry_date"`
	CaloriesPerUnit *float64 `json:"caloriesPerUnit,omitempty" bson:"calories_per_unit,omitempty"`
}

// Expiry parses the expiry date as midnight UTC.
func (i Ingredient) Expiry() (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(i.ExpiryDate))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse expiry date %q: %w", i.ExpiryDate, err)
	}
	return t, nil
}

// Validate checks the ingredient invariants.
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: ingredient name must not be empty", ErrInvalidInput)
	}
	if !i.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, i.Category)
	}
	if _, err := i.Expiry(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// ParsedQuantity returns the structured form of the quantity text, if it has one.
func (i Ingredient) ParsedQuantity() (Quantity, bool) {
	return ParseQuantity(i.Quantity)
}

// DaysUntilExpiry returns the ceiling of whole days between asOf and the expiry date.
// The value is negative for items that already expired. Unparseable dates report ok=false.
func DaysUntilExpiry(item Ingredient, asOf time.Time) (int, bool) {
	expiry, err := item.Expiry()
	if err != nil {
		return 0, false
	}
	days := math.Ceil(expiry.Sub(asOf).Hours() / 24)
	return int(days), true
}

// IsExpiringSoon reports whether the item expires within the next ExpiringSoonDays days, today included.
func IsExpiringSoon(item Ingredient, asOf time.Time) bool {
	days, ok := DaysUntilExpiry(item, asOf)
	if !ok {
		return false
	}
	return days >= 0 && days <= ExpiringSoonDays
}

// DefaultInventory is the seed stock used when nothing has been stored yet.
func DefaultInventory() []Ingredient {
	return []Ingredient{
		{ID: "1", Name: "Eggs", Quantity: "12", Category: CategoryDairy, ExpiryDate: "2023-12-10"},
		{ID: "2", Name: "Spinach", Quantity: "200g", Category: CategoryProduce, ExpiryDate: "2023-12-05"},
		{ID: "3", Name: "Chicken Breast", Quantity: "500g", Category: CategoryMeat, ExpiryDate: "2023-12-07"},
		{ID: "4", Name: "Rice", Quantity: "1kg", Category: CategoryPantry, ExpiryDate: "2024-06-01"},
	}
}
