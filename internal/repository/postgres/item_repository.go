package postgres

import (
	"context"
	"errors"
	"fmt"

	"fashionTrends/domain"

	"gorm.io/gorm"
)

type ItemRepository struct {
	DB *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{
		DB: db,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.FashionItem) error {
	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id uint64) (domain.FashionItem, error) {
	var item domain.FashionItem

	err := r.DB.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FashionItem{}, domain.ErrItemNotFound
		}
		return domain.FashionItem{}, fmt.Errorf("failed to find item: %w", err)
	}

	return item, nil
}

func (r *ItemRepository) FindAll(ctx context.Context) ([]domain.FashionItem, error) {
	var items []domain.FashionItem

	if err := r.DB.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find items: %w", err)
	}

	return items, nil
}

func (r *ItemRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.FashionItem, error) {
	if len(ids) == 0 {
		return []domain.FashionItem{}, nil
	}

	var items []domain.FashionItem

	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by ids: %w", err)
	}

	return items, nil
}

func (r *ItemRepository) FindBySeason(ctx context.Context, season string) ([]domain.FashionItem, error) {
	var items []domain.FashionItem

	if err := r.DB.WithContext(ctx).Where("season = ?", season).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by season: %w", err)
	}

	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.FashionItem) error {
	var existing domain.FashionItem
	if err := r.DB.WithContext(ctx).First(&existing, item.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("failed to find item: %w", err)
	}

	updateData := map[string]interface{}{
		"name":        item.Name,
		"category":    item.Category,
		"subcategory": item.Subcategory,
		"brand":       item.Brand,
		"price":       item.Price,
		"color":       item.Color,
		"style":       item.Style,
		"season":      item.Season,
		"description": item.Description,
		"image_url":   item.ImageURL,
	}

	result := r.DB.WithContext(ctx).Model(&domain.FashionItem{}).Where("id = ?", item.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id uint64) error {
	result := r.DB.WithContext(ctx).Delete(&domain.FashionItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

// ReplaceTrendingScores zeroes every trending score and writes the supplied
// normalized scores, all inside one transaction so a failure cannot leave a
// half-reset catalog.
func (r *ItemRepository) ReplaceTrendingScores(ctx context.Context, scores map[uint64]float64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.FashionItem{}).
			Where("trending_score <> 0").
			Update("trending_score", 0).Error; err != nil {
			return fmt.Errorf("failed to reset trending scores: %w", err)
		}

		for id, score := range scores {
			if err := tx.Model(&domain.FashionItem{}).
				Where("id = ?", id).
				Update("trending_score", score).Error; err != nil {
				return fmt.Errorf("failed to set trending score for item %d: %w", id, err)
			}
		}

		return nil
	})
}
