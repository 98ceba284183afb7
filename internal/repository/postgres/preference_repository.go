package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fashionTrends/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	DB *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{
		DB: db,
	}
}

func (r *PreferenceRepository) FindByUser(ctx context.Context, userID uint) ([]domain.UserPreference, error) {
	var prefs []domain.UserPreference

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("preference_key, preference_value").
		Find(&prefs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find preferences: %w", err)
	}

	return prefs, nil
}

// Upsert sets an explicit weight for a (user, key, value) preference,
// inserting the row when it does not exist. This is the manual preference
// endpoint's set semantics, distinct from the feedback path's +0.1 bumps.
func (r *PreferenceRepository) Upsert(ctx context.Context, pref domain.UserPreference) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.UserPreference

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND preference_key = ? AND preference_value = ?",
				pref.UserID, pref.PreferenceKey, pref.PreferenceValue).
			First(&existing).Error

		switch {
		case err == nil:
			return tx.Model(&existing).Updates(map[string]interface{}{
				"weight":     pref.Weight,
				"updated_at": time.Now(),
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			pref.UpdatedAt = time.Now()
			return tx.Create(&pref).Error
		default:
			return fmt.Errorf("failed to look up preference: %w", err)
		}
	})
}
