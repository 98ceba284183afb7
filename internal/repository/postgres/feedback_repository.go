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

const (
	preferenceIncrement = 0.1
	initialPrefWeight   = 1.0
)

// FeedbackRepository persists one logical feedback event: the interaction
// row plus the weighted preference bumps it implies, committed atomically.
type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{
		DB: db,
	}
}

// Record appends the interaction and increments (or inserts) each preference
// in a single transaction. The row lock makes the increment-or-insert safe
// against concurrent feedback for the same (user, key, value) tuple; a
// failure anywhere rolls the whole event back.
func (r *FeedbackRepository) Record(ctx context.Context, interaction *domain.UserInteraction, prefs []domain.UserPreference) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(interaction).Error; err != nil {
			return fmt.Errorf("failed to create interaction: %w", err)
		}

		for _, pref := range prefs {
			var existing domain.UserPreference

			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ? AND preference_key = ? AND preference_value = ?",
					pref.UserID, pref.PreferenceKey, pref.PreferenceValue).
				First(&existing).Error

			switch {
			case err == nil:
				if err := tx.Model(&existing).Updates(map[string]interface{}{
					"weight":     gorm.Expr("weight + ?", preferenceIncrement),
					"updated_at": time.Now(),
				}).Error; err != nil {
					return fmt.Errorf("failed to bump preference: %w", err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				pref.Weight = initialPrefWeight
				pref.UpdatedAt = time.Now()
				if err := tx.Create(&pref).Error; err != nil {
					return fmt.Errorf("failed to create preference: %w", err)
				}
			default:
				return fmt.Errorf("failed to look up preference: %w", err)
			}
		}

		return nil
	})
}
