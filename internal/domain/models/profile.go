package models

import (
	"fmt"
	"strings"
)

// Goal is the user's dietary objective.
type Goal string

const (
	GoalWeightLoss     Goal = "weight-loss"
	GoalMuscleGain     Goal = "muscle-gain"
	GoalMaintenance    Goal = "maintenance"
	GoalBudgetFriendly Goal = "budget-friendly"
)

// Valid reports whether g is a known goal.
func (g Goal) Valid() bool {
	switch g {
	case GoalWeightLoss, GoalMuscleGain, GoalMaintenance, GoalBudgetFriendly:
		return true
	}
	return false
}

// CookingSkill is the self-assessed skill level of the cook.
type CookingSkill string

const (
	SkillBeginner     CookingSkill = "beginner"
	SkillIntermediate CookingSkill = "intermediate"
	SkillAdvanced     CookingSkill = "advanced"
)

// Valid reports whether s is a known skill level.
func (s CookingSkill) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

// UserProfile is the single profile of the installation.
type UserProfile struct {
	Name                string       `json:"name" bson:"name"`
	DietaryRestrictions []string     `json:"dietaryRestrictions" bson:"dietary_restrictions"`
	Allergies           []string     `json:"allergies" bson:"allergies"`
	Goals               Goal         `json:"goals" bson:"goals"`
	CookingSkill        CookingSkill `json:"cookingSkill" bson:"cooking_skill"`
	HouseholdSize       int          `json:"householdSize" bson:"household_size"`
	CuisinePreferences  []string     `json:"cuisinePreferences" bson:"cuisine_preferences"`
	MaxCookingTime      int          `json:"maxCookingTime" bson:"max_cooking_time"`
}

// DefaultProfile is restored whenever no stored profile can be read.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:                "Chef",
		DietaryRestrictions: []string{},
		Allergies:           []string{},
		Goals:               GoalMaintenance,
		CookingSkill:        SkillIntermediate,
		HouseholdSize:       2,
		CuisinePreferences:  []string{"Italian"},
		MaxCookingTime:      45,
	}
}

// Validate checks enum membership and positivity constraints.
func (p UserProfile) Validate() error {
	switch {
	case !p.Goals.Valid():
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidInput, p.Goals)
	case !p.CookingSkill.Valid():
		return fmt.Errorf("%w: unknown cooking skill %q", ErrInvalidInput, p.CookingSkill)
	case p.HouseholdSize <= 0:
		return fmt.Errorf("%w: household size must be positive", ErrInvalidInput)
	case p.MaxCookingTime <= 0:
		return fmt.Errorf("%w: max cooking time must be positive", ErrInvalidInput)
	}
	return nil
}

// ProfilePatch carries a partial profile update; nil fields are left untouched.
type ProfilePatch struct {
	Name                *string       `json:"name,omitempty"`
	DietaryRestrictions []string      `json:"dietaryRestrictions,omitempty"`
	Allergies           []string      `json:"allergies,omitempty"`
	Goals               *Goal         `json:"goals,omitempty"`
	CookingSkill        *CookingSkill `json:"cookingSkill,omitempty"`
	HouseholdSize       *int          `json:"householdSize,omitempty"`
	CuisinePreferences  []string      `json:"cuisinePreferences,omitempty"`
	MaxCookingTime      *int          `json:"maxCookingTime,omitempty"`
}

// Apply returns a copy of p with the patch applied, or an error if the result is invalid.
func (p UserProfile) Apply(patch ProfilePatch) (UserProfile, error) {
	next := p
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.DietaryRestrictions != nil {
		next.DietaryRestrictions = cleanTags(patch.DietaryRestrictions)
	}
	if patch.Allergies != nil {
		next.Allergies = cleanTags(patch.Allergies)
	}
	if patch.Goals != nil {
		next.Goals = *patch.Goals
	}
	if patch.CookingSkill != nil {
		next.CookingSkill = *patch.CookingSkill
	}
	if patch.HouseholdSize != nil {
		next.HouseholdSize = *patch.HouseholdSize
	}
	if patch.CuisinePreferences != nil {
		next.CuisinePreferences = cleanTags(patch.CuisinePreferences)
	}
	if patch.MaxCookingTime != nil {
		next.MaxCookingTime = *patch.MaxCookingTime
	}
	if err := next.Validate(); err != nil {
		return p, err
	}
	return next, nil
}

// cleanTags trims entries and drops blanks and duplicates while keeping order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
