package rest

import (
	"context"
	"net/http"
	"time"

	"fashionTrends/domain"
	"fashionTrends/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PreferenceService interface {
	GetPreferences(ctx context.Context, userID uint) ([]domain.UserPreference, error)
	SetPreferences(ctx context.Context, userID uint, prefs []domain.UserPreference) error
}

type PreferenceHandler struct {
	preferenceService PreferenceService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewPreferenceHandler(preferenceService PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

type PreferenceEntry struct {
	Key    string  `json:"key" validate:"required,oneof=category style color brand"`
	Value  string  `json:"value" validate:"required"`
	Weight float64 `json:"weight" validate:"gte=0"`
}

type SetPreferencesRequest struct {
	Preferences []PreferenceEntry `json:"preferences" validate:"required,min=1,dive"`
}

func (h *PreferenceHandler) GetPreferences(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	prefs, err := h.preferenceService.GetPreferences(ctx, userID)
	if err != nil {
		logger.Error("Failed to get preferences", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"preferences": prefs,
	})
}

func (h *PreferenceHandler) SetPreferences(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req SetPreferencesRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate preferences request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	prefs := make([]domain.UserPreference, 0, len(req.Preferences))
	for _, entry := range req.Preferences {
		prefs = append(prefs, domain.UserPreference{
			PreferenceKey:   entry.Key,
			PreferenceValue: entry.Value,
			Weight:          entry.Weight,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.preferenceService.SetPreferences(ctx, userID, prefs); err != nil {
		logger.Error("Failed to set preferences", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Preferences updated",
	})
}
