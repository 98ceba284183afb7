package postgres

import (
	"context"
	"fmt"

	"fashionTrends/domain"

	"gorm.io/gorm"
)

type InteractionRepository struct {
	DB *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{
		DB: db,
	}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *domain.UserInteraction) error {
	if err := r.DB.WithContext(ctx).Create(interaction).Error; err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}

	return nil
}

// FindAll returns the whole log in insertion order. The scoring engine
// rebuilds its matrices from this on every call.
func (r *InteractionRepository) FindAll(ctx context.Context) ([]domain.UserInteraction, error) {
	var interactions []domain.UserInteraction

	if err := r.DB.WithContext(ctx).Order("id").Find(&interactions).Error; err != nil {
		return nil, fmt.Errorf("failed to find interactions: %w", err)
	}

	return interactions, nil
}

func (r *InteractionRepository) Query(ctx context.Context, filter domain.InteractionFilter) ([]domain.UserInteraction, error) {
	q := r.DB.WithContext(ctx).Model(&domain.UserInteraction{})

	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.ItemID != nil {
		q = q.Where("item_id = ?", *filter.ItemID)
	}
	if filter.Since != nil {
		q = q.Where("timestamp >= ?", *filter.Since)
	}
	if filter.Until != nil {
		q = q.Where("timestamp < ?", *filter.Until)
	}

	var interactions []domain.UserInteraction
	if err := q.Order("id").Find(&interactions).Error; err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}

	return interactions, nil
}
