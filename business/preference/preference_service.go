package preference

import (
	"context"
	"fmt"

	"fashionTrends/domain"
)

// PreferenceRepository contract interface
type PreferenceRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.UserPreference, error)
	Upsert(ctx context.Context, pref domain.UserPreference) error
}

type preferenceService struct {
	prefRepo PreferenceRepository
}

func NewPreferenceService(prefRepo PreferenceRepository) *preferenceService {
	return &preferenceService{
		prefRepo: prefRepo,
	}
}

func (s *preferenceService) GetPreferences(ctx context.Context, userID uint) ([]domain.UserPreference, error) {
	return s.prefRepo.FindByUser(ctx, userID)
}

// SetPreferences applies a manual bulk update: each entry sets the weight
// outright (defaulting to 1.0), unlike the feedback path which accumulates
// +0.1 bumps. Entries with a missing key or value are skipped.
func (s *preferenceService) SetPreferences(ctx context.Context, userID uint, prefs []domain.UserPreference) error {
	for _, pref := range prefs {
		if pref.PreferenceKey == "" || pref.PreferenceValue == "" {
			continue
		}

		pref.UserID = userID
		if pref.Weight == 0 {
			pref.Weight = 1.0
		}

		if err := s.prefRepo.Upsert(ctx, pref); err != nil {
			return fmt.Errorf("failed to upsert preference %s=%s: %w", pref.PreferenceKey, pref.PreferenceValue, err)
		}
	}

	return nil
}
