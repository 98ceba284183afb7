package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fashionTrends/domain"
	"fashionTrends/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ItemService interface {
	GetAllItems(ctx context.Context) ([]domain.FashionItem, error)
	GetItemByID(ctx context.Context, id uint64) (*domain.FashionItem, error)
	CreateItem(ctx context.Context, item *domain.FashionItem) (*domain.FashionItem, error)
	UpdateItem(ctx context.Context, item *domain.FashionItem) (*domain.FashionItem, error)
	DeleteItem(ctx context.Context, id uint64) error
}

type ItemHandler struct {
	itemService ItemService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewItemHandler(itemService ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type ItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Subcategory string  `json:"subcategory"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price" validate:"gte=0"`
	Color       string  `json:"color"`
	Style       string  `json:"style"`
	Season      string  `json:"season" validate:"omitempty,oneof=spring summer fall winter all"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
}

func (h *ItemHandler) GetAllItems(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.itemService.GetAllItems(ctx)
	if err != nil {
		logger.Error("Failed to find all items", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get all items",
		"items":   items,
	})
}

func (h *ItemHandler) GetItemByID(c echo.Context) error {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid item id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.itemService.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find item by id",
		"item":    item,
	})
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req ItemRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate item request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newItem, err := h.itemService.CreateItem(ctx, &domain.FashionItem{
		Name:        req.Name,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Brand:       req.Brand,
		Price:       req.Price,
		Color:       req.Color,
		Style:       req.Style,
		Season:      req.Season,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		logger.Error("Failed to create item", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Item successfully created",
		"item":    newItem,
	})
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid item id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate item request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.itemService.UpdateItem(ctx, &domain.FashionItem{
		ID:          itemID,
		Name:        req.Name,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Brand:       req.Brand,
		Price:       req.Price,
		Color:       req.Color,
		Style:       req.Style,
		Season:      req.Season,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		logger.Error("Failed to update item", err)
		if errors.Is(err, domain.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update item",
		"item":    updated,
	})
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid item id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.itemService.DeleteItem(ctx, itemID); err != nil {
		logger.Error("Failed to delete item", err)
		if errors.Is(err, domain.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "item successfully deleted",
		"item_id": itemID,
	})
}
