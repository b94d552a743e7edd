package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestDaysUntilExpiry(t *testing.T) {
	eggs := Ingredient{ID: "1", Name: "Eggs", Quantity: "12", Category: CategoryDairy, ExpiryDate: "2023-12-10"}

	t.Run("two days ahead is expiring soon", func(t *testing.T) {
		days, ok := DaysUntilExpiry(eggs, mustDate(t, "2023-12-08"))
		require.True(t, ok)
		assert.Equal(t, 2, days)
		assert.True(t, IsExpiringSoon(eggs, mustDate(t, "2023-12-08")))
	})

	t.Run("partial days round up", func(t *testing.T) {
		asOf := mustDate(t, "2023-12-08").Add(10 * time.Hour)
		days, ok := DaysUntilExpiry(eggs, asOf)
		require.True(t, ok)
		assert.Equal(t, 2, days)
	})

	t.Run("already expired is negative", func(t *testing.T) {
		days, ok := DaysUntilExpiry(eggs, mustDate(t, "2023-12-15"))
		require.True(t, ok)
		assert.Equal(t, -5, days)
		assert.False(t, IsExpiringSoon(eggs, mustDate(t, "2023-12-15")))
	})

	t.Run("unparseable date", func(t *testing.T) {
		_, ok := DaysUntilExpiry(Ingredient{ExpiryDate: "soon"}, time.Now())
		assert.False(t, ok)
		assert.False(t, IsExpiringSoon(Ingredient{ExpiryDate: "soon"}, time.Now()))
	})
}

func TestDaysUntilExpiry_MonotonicAndWindow(t *testing.T) {
	item := Ingredient{Name: "Milk", Category: CategoryDairy, ExpiryDate: "2024-03-01"}
	start := mustDate(t, "2024-02-15")

	prev := 1 << 30
	for step := 0; step < 24*30; step += 5 {
		asOf := start.Add(time.Duration(step) * time.Hour)
		days, ok := DaysUntilExpiry(item, asOf)
		require.True(t, ok)
		assert.LessOrEqual(t, days, prev, "days must not grow as time advances")
		assert.Equal(t, days >= 0 && days <= 3, IsExpiringSoon(item, asOf))
		prev = days
	}
}

func TestIngredient_Validate(t *testing.T) {
	valid := Ingredient{Name: "Rice", Category: CategoryPantry, ExpiryDate: "2024-06-01"}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = " "
	assert.ErrorIs(t, noName.Validate(), ErrInvalidInput)

	badDate := valid
	badDate.ExpiryDate = "06/01/2024"
	assert.ErrorIs(t, badDate.Validate(), ErrInvalidInput)

	badCategory := valid
	badCategory.Category = "snacks"
	assert.ErrorIs(t, badCategory.Validate(), ErrInvalidInput)
}

func TestCategory_UnmarshalJSON(t *testing.T) {
	var items []Ingredient
	raw := `[{"name":"Kale","category":"Produce"},{"name":"Chips","category":"snacks"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &items))

	assert.Equal(t, CategoryProduce, items[0].Category)
	assert.Equal(t, CategoryOther, items[1].Category)
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in        string
		magnitude string
		unit      string
		ok        bool
	}{
		{in: "12", magnitude: "12", unit: "", ok: true},
		{in: "500g", magnitude: "500", unit: "g", ok: true},
		{in: "1.5 kg", magnitude: "1.5", unit: "kg", ok: true},
		{in: "0,75 L", magnitude: "0.75", unit: "L", ok: true},
		{in: "1 unit", magnitude: "1", unit: "unit", ok: true},
		{in: "a handful", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, ok := ParseQuantity(tt.in)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.magnitude, q.Magnitude.String())
			assert.Equal(t, tt.unit, q.Unit)
		})
	}
}
