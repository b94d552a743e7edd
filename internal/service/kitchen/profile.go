package kitchen

import (
	"context"
	"slices"

	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/internal/repository/slots"
)

// Profile returns the user's cooking profile.
func (s *Service) Profile() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProfile(s.profile)
}

// UpdateProfile applies a field-by-field change. An invalid patch leaves the profile untouched.
func (s *Service) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.profile.Apply(patch)
	if err != nil {
		return cloneProfile(s.profile), err
	}
	s.profile = updated
	s.persist(ctx, slots.Profile, s.profile)
	return cloneProfile(s.profile), nil
}

func cloneProfile(p models.UserProfile) models.UserProfile {
	p.DietaryRestrictions = slices.Clone(p.DietaryRestrictions)
	p.Allergies = slices.Clone(p.Allergies)
	p.CuisinePreferences = slices.Clone(p.CuisinePreferences)
	return p
}
