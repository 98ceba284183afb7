package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fashionTrends/domain"
	"fashionTrends/pkg/logger"
	"fashionTrends/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID uint, topN int) ([]domain.Recommendation, error)
	RecordFeedback(ctx context.Context, userID uint, event domain.FeedbackEvent) error
}

type RecommendationHandler struct {
	recommendationService RecommendationService
	validator             *validator.Validate
	timeout               time.Duration
	defaultTopN           int
}

func NewRecommendationHandler(recommendationService RecommendationService, defaultTopN int) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		validator:             validator.New(),
		timeout:               10 * time.Second,
		defaultTopN:           defaultTopN,
	}
}

type FeedbackRequest struct {
	ItemID          uint64   `json:"item_id" validate:"required"`
	InteractionType string   `json:"interaction_type" validate:"required,oneof=view like cart wishlist purchase"`
	Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	topN := h.defaultTopN
	if raw := c.QueryParam("top_n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			logger.Error("Invalid top_n query param", err)
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "top_n must be an integer"})
		}
		topN = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	metrics.RecommendRequests.Inc()
	timer := time.Now()

	recs, err := h.recommendationService.GetRecommendations(ctx, userID, topN)
	if err != nil {
		logger.Error("Failed to get recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendLatency.Observe(time.Since(timer).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"recommendations": recs,
		"count":           len(recs),
	}))
}

func (h *RecommendationHandler) RecordFeedback(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req FeedbackRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate feedback request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err := h.recommendationService.RecordFeedback(ctx, userID, domain.FeedbackEvent{
		ItemID:          req.ItemID,
		InteractionType: req.InteractionType,
		Rating:          req.Rating,
	})
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			// The interaction itself was still appended.
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to record feedback", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.FeedbackEvents.WithLabelValues(req.InteractionType).Inc()

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(map[string]interface{}{
		"message": "Feedback recorded",
		"item_id": req.ItemID,
	}))
}
