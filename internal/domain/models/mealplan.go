package models

import (
	"fmt"
	"strings"
)

// Weekdays is the canonical order of a planned week.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// MealType names one of the three daily slots.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// MealTypes lists the slots in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

// ParseMealType validates a slot name.
func ParseMealType(raw string) (MealType, error) {
	switch t := MealType(strings.ToLower(strings.TrimSpace(raw))); t {
	case MealBreakfast, MealLunch, MealDinner:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown meal type %q", ErrInvalidInput, raw)
}

// ParseWeekday returns the canonical weekday name for raw, ignoring case.
func ParseWeekday(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, day := range Weekdays {
		if strings.EqualFold(day, raw) {
			return day, nil
		}
	}
	return "", fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, raw)
}

// MealPlanDay holds up to three planned meals for one weekday. Slots are value copies.
type MealPlanDay struct {
	Day       string  `json:"day" bson:"day"`
	Breakfast *Recipe `json:"breakfast,omitempty" bson:"breakfast,omitempty"`
	Lunch     *Recipe `json:"lunch,omitempty" bson:"lunch,omitempty"`
	Dinner    *Recipe `json:"dinner,omitempty" bson:"dinner,omitempty"`
}

// Slot returns the recipe in the given slot, or nil when empty.
func (d MealPlanDay) Slot(t MealType) *Recipe {
	switch t {
	case MealBreakfast:
		return d.Breakfast
	case MealLunch:
		return d.Lunch
	case MealDinner:
		return d.Dinner
	}
	return nil
}

// WithSlot returns a copy of the day with the slot replaced; nil empties it.
func (d MealPlanDay) WithSlot(t MealType, recipe *Recipe) MealPlanDay {
	var stored *Recipe
	if recipe != nil {
		c := recipe.Clone()
		stored = &c
	}
	switch t {
	case MealBreakfast:
		d.Breakfast = stored
	case MealLunch:
		d.Lunch = stored
	case MealDinner:
		d.Dinner = stored
	}
	return d
}

// Meals returns the filled slots in breakfast, lunch, dinner order.
func (d MealPlanDay) Meals() []Recipe {
	out := make([]Recipe, 0, 3)
	for _, t := range MealTypes {
		if r := d.Slot(t); r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// TotalCalories sums the calories of every present slot.
func (d MealPlanDay) TotalCalories() float64 {
	total := 0.0
	for _, r := range d.Meals() {
		total += r.CalorieCount()
	}
	return total
}

// IsEmpty reports whether no slot is filled.
func (d MealPlanDay) IsEmpty() bool {
	return d.Breakfast == nil && d.Lunch == nil && d.Dinner == nil
}

// EmptyWeek returns seven empty days in canonical order.
func EmptyWeek() []MealPlanDay {
	week := make([]MealPlanDay, len(Weekdays))
	for i, day := range Weekdays {
		week[i] = MealPlanDay{Day: day}
	}
	return week
}

// CanonicalWeek lays plan out as exactly seven days Monday..Sunday. Days missing from
// plan are synthesized empty; the first entry wins when a weekday appears twice.
func CanonicalWeek(plan []MealPlanDay) []MealPlanDay {
	week := EmptyWeek()
	filled := make([]bool, len(Weekdays))
	for _, day := range plan {
		name, err := ParseWeekday(day.Day)
		if err != nil {
			continue
		}
		for i, w := range Weekdays {
			if w == name && !filled[i] {
				day.Day = name
				week[i] = day
				filled[i] = true
			}
		}
	}
	return week
}

// HasMeals reports whether any slot of any day is filled.
func HasMeals(plan []MealPlanDay) bool {
	for _, day := range plan {
		if !day.IsEmpty() {
			return true
		}
	}
	return false
}
