package models

import "time"

// DefaultShelfLifeDays is the placeholder shelf life given to purchased items moved into stock.
const DefaultShelfLifeDays = 7

// ShoppingItem is one line of the shopping list.
type ShoppingItem struct {
	ID       string   `json:"id" bson:"id"`
	Name     string   `json:"name" bson:"name"`
	Quantity string   `json:"quantity" bson:"quantity"`
	Category Category `json:"category" bson:"category"`
	Checked  bool     `json:"checked" bson:"checked"`
}

// ToIngredient converts a purchased item into stock that keeps the same id and
// expires DefaultShelfLifeDays after asOf.
func (s ShoppingItem) ToIngredient(asOf time.Time) Ingredient {
	return Ingredient{
		ID:         s.ID,
		Name:       s.Name,
		Quantity:   s.Quantity,
		Category:   s.Category,
		ExpiryDate: asOf.AddDate(0, 0, DefaultShelfLifeDays).Format(DateLayout),
	}
}
