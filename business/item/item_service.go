package item

import (
	"context"
	"errors"
	"fmt"

	"fashionTrends/domain"
	"fashionTrends/pkg/logger"
)

// ItemRepository contract interface
type ItemRepository interface {
	Create(ctx context.Context, item *domain.FashionItem) error
	FindByID(ctx context.Context, id uint64) (domain.FashionItem, error)
	FindAll(ctx context.Context) ([]domain.FashionItem, error)
	Update(ctx context.Context, item *domain.FashionItem) error
	Delete(ctx context.Context, id uint64) error
}

type itemService struct {
	itemRepo ItemRepository
}

func NewItemService(itemRepo ItemRepository) *itemService {
	return &itemService{
		itemRepo: itemRepo,
	}
}

func (s *itemService) GetAllItems(ctx context.Context) ([]domain.FashionItem, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all items", err)
		return nil, err
	}

	return items, nil
}

func (s *itemService) GetItemByID(ctx context.Context, id uint64) (*domain.FashionItem, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (s *itemService) CreateItem(ctx context.Context, item *domain.FashionItem) (*domain.FashionItem, error) {
	if item.Name == "" {
		return nil, fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
	}
	if item.Category == "" {
		return nil, fmt.Errorf("%w: item category is required", domain.ErrInvalidInput)
	}
	if item.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		logger.Error("Failed to create item", err)
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	logger.Info("Item created", "item_id", item.ID)

	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, item *domain.FashionItem) (*domain.FashionItem, error) {
	if item.ID == 0 {
		return nil, fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
	}
	if item.Name == "" {
		return nil, fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
	}
	if item.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, err
		}
		logger.Error("Failed to update item", err)
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	updated, err := s.itemRepo.FindByID(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated item: %w", err)
	}

	return &updated, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id uint64) error {
	if id == 0 {
		return fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return err
		}
		logger.Error("Failed to delete item", err)
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}
