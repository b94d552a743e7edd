package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfileIsValid(t *testing.T) {
	p := DefaultProfile()

	require.NoError(t, p.Validate())
	assert.Equal(t, "Chef", p.Name)
	assert.Equal(t, 45, p.MaxCookingTime)
	assert.Equal(t, []string{"Italian"}, p.CuisinePreferences)
}

func TestUserProfile_Apply(t *testing.T) {
	base := DefaultProfile()

	t.Run("updates only provided fields", func(t *testing.T) {
		name := "  Ana "
		skill := SkillAdvanced
		next, err := base.Apply(ProfilePatch{
			Name:               &name,
			CookingSkill:       &skill,
			CuisinePreferences: []string{" Thai", "", "thai", "Mexican"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Ana", next.Name)
		assert.Equal(t, SkillAdvanced, next.CookingSkill)
		assert.Equal(t, []string{"Thai", "Mexican"}, next.CuisinePreferences)
		assert.Equal(t, base.Goals, next.Goals)
		assert.Equal(t, base.HouseholdSize, next.HouseholdSize)
	})

	t.Run("rejects invalid values and keeps the original", func(t *testing.T) {
		zero := 0
		next, err := base.Apply(ProfilePatch{HouseholdSize: &zero})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, base, next)

		goal := Goal("bulk")
		_, err = base.Apply(ProfilePatch{Goals: &goal})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestShoppingItem_ToIngredient(t *testing.T) {
	item := ShoppingItem{ID: "a", Name: "Milk", Quantity: "1L", Category: CategoryDairy, Checked: true}
	asOf := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	got := item.ToIngredient(asOf)

	assert.Equal(t, Ingredient{ID: "a", Name: "Milk", Quantity: "1L", Category: CategoryDairy, ExpiryDate: "2024-01-08"}, got)
}
