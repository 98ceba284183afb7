package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"fashionTrends/domain"
	"fashionTrends/pkg/logger"
	"fashionTrends/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type TrendService interface {
	AnalyzeTrends(ctx context.Context, days int) (domain.TrendReport, error)
	SeasonalTrends(ctx context.Context, season string) ([]domain.TrendingItem, error)
	UpdateTrendingScores(ctx context.Context) (int, error)
}

type TrendHandler struct {
	trendService TrendService
	timeout      time.Duration
	defaultDays  int
}

func NewTrendHandler(trendService TrendService, defaultDays int) *TrendHandler {
	return &TrendHandler{
		trendService: trendService,
		timeout:      15 * time.Second,
		defaultDays:  defaultDays,
	}
}

var validSeasons = map[string]bool{
	"spring": true,
	"summer": true,
	"fall":   true,
	"winter": true,
}

func (h *TrendHandler) GetTrends(c echo.Context) error {
	days := h.defaultDays
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "days must be a positive integer"})
		}
		days = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	timer := time.Now()

	report, err := h.trendService.AnalyzeTrends(ctx, days)
	if err != nil {
		logger.Error("Failed to analyze trends", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.TrendAnalysisLatency.Observe(time.Since(timer).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"period_days": days,
		"trends":      report,
	}))
}

func (h *TrendHandler) GetSeasonalTrends(c echo.Context) error {
	season := c.Param("season")
	if !validSeasons[season] {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "season must be one of spring, summer, fall, winter"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.trendService.SeasonalTrends(ctx, season)
	if err != nil {
		logger.Error("Failed to get seasonal trends", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"season": season,
		"items":  items,
	}))
}

func (h *TrendHandler) RefreshTrendingScores(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.trendService.UpdateTrendingScores(ctx)
	if err != nil {
		logger.Error("Failed to refresh trending scores", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"message":       "Trending scores refreshed",
		"items_updated": updated,
	}))
}
