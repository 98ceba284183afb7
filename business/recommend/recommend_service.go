package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fashionTrends/business/scoring"
	"fashionTrends/domain"
	"fashionTrends/pkg/config"
	"fashionTrends/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// ItemRepository contract interface
type ItemRepository interface {
	FindAll(ctx context.Context) ([]domain.FashionItem, error)
	FindByID(ctx context.Context, id uint64) (domain.FashionItem, error)
}

// InteractionRepository contract interface
type InteractionRepository interface {
	FindAll(ctx context.Context) ([]domain.UserInteraction, error)
}

// FeedbackRepository appends an interaction and applies its preference bumps
// in a single transaction.
type FeedbackRepository interface {
	Record(ctx context.Context, interaction *domain.UserInteraction, prefs []domain.UserPreference) error
}

// Fusion weights for the hybrid blend. Collaborative scores are raw
// accumulated weights while content scores are cosine values in [-1,1]; the
// blend mixes those scales on purpose and must not be normalized.
const (
	collaborativeWeight = 0.5
	contentWeight       = 0.4
	trendingWeight      = 0.1
)

type recommendationService struct {
	itemRepo        ItemRepository
	interactionRepo InteractionRepository
	feedbackRepo    FeedbackRepository
	cfg             config.EngineConfig
	now             func() time.Time
}

func NewRecommendationService(
	itemRepo ItemRepository,
	interactionRepo InteractionRepository,
	feedbackRepo FeedbackRepository,
	cfg config.EngineConfig,
) *recommendationService {
	return &recommendationService{
		itemRepo:        itemRepo,
		interactionRepo: interactionRepo,
		feedbackRepo:    feedbackRepo,
		cfg:             cfg,
		now:             time.Now,
	}
}

// GetRecommendations rebuilds both matrices from current store state, runs
// the collaborative and content filters in parallel, blends them with the
// trending signal and resolves the surviving IDs back to catalog records.
// Unknown users are not an error; they fall through to the trending term
// alone.
func (s *recommendationService) GetRecommendations(ctx context.Context, userID uint, topN int) ([]domain.Recommendation, error) {
	if topN <= 0 {
		return []domain.Recommendation{}, nil
	}

	interactions, err := s.interactionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load interaction log: %w", err)
	}

	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	userItem := scoring.BuildUserItemMatrix(interactions)
	features := scoring.BuildItemFeatureMatrix(items)

	var history []domain.UserInteraction
	for _, i := range interactions {
		if i.UserID == userID {
			history = append(history, i)
		}
	}

	// Both filters are read-only over the freshly built matrices, so they
	// can run concurrently; fusion waits for both.
	var collabRecs, contentRecs []scoredItem

	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		collabRecs = collaborativeFiltering(userItem, userID, topN*2, s.cfg.SimilarityThreshold, s.cfg.TopSimilarUsers)
		return nil
	})
	eg.Go(func() error {
		contentRecs = contentBasedFiltering(features, history, topN*2)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	cutoff := s.now().Add(-time.Duration(s.cfg.TrendWindowDays) * 24 * time.Hour)
	trendingRecs := trendingCounts(interactions, cutoff, topN)

	combined := make(map[uint64]float64)
	for _, rec := range collabRecs {
		combined[rec.ItemID] += rec.Score * collaborativeWeight
	}
	for _, rec := range contentRecs {
		combined[rec.ItemID] += rec.Score * contentWeight
	}
	if len(trendingRecs) > 0 {
		maxCount := trendingRecs[0].Score
		for _, rec := range trendingRecs {
			combined[rec.ItemID] += rec.Score / maxCount * trendingWeight
		}
	}

	ranked := truncate(rankScores(combined), topN)

	itemsByID := make(map[uint64]domain.FashionItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	results := make([]domain.Recommendation, 0, len(ranked))
	for _, rec := range ranked {
		item, ok := itemsByID[rec.ItemID]
		if !ok {
			continue // stale ID, skip silently
		}
		results = append(results, domain.Recommendation{
			ItemID:              item.ID,
			Name:                item.Name,
			Category:            item.Category,
			Brand:               item.Brand,
			Price:               item.Price,
			Style:               item.Style,
			Color:               item.Color,
			ImageURL:            item.ImageURL,
			RecommendationScore: rec.Score,
			TrendingScore:       item.TrendingScore,
		})
	}

	return results, nil
}

// RecordFeedback appends the interaction and bumps the user's weighted
// preferences for the item's category/style/color/brand in one transaction.
// When the item does not resolve, the interaction is still appended but the
// preference update is skipped and ErrItemNotFound is returned.
func (s *recommendationService) RecordFeedback(ctx context.Context, userID uint, event domain.FeedbackEvent) error {
	interaction := &domain.UserInteraction{
		UserID:          userID,
		ItemID:          event.ItemID,
		InteractionType: event.InteractionType,
		Rating:          event.Rating,
		Timestamp:       s.now(),
	}

	item, err := s.itemRepo.FindByID(ctx, event.ItemID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			logger.Warn("Feedback for unknown item, recording interaction only", "item_id", event.ItemID)
			if recErr := s.feedbackRepo.Record(ctx, interaction, nil); recErr != nil {
				return recErr
			}
			return fmt.Errorf("%w: %d", domain.ErrItemNotFound, event.ItemID)
		}
		return fmt.Errorf("failed to resolve item: %w", err)
	}

	prefs := make([]domain.UserPreference, 0, 4)
	for _, kv := range []struct {
		key   string
		value string
	}{
		{domain.PreferenceKeyCategory, item.Category},
		{domain.PreferenceKeyStyle, item.Style},
		{domain.PreferenceKeyColor, item.Color},
		{domain.PreferenceKeyBrand, item.Brand},
	} {
		if kv.value == "" {
			continue
		}
		prefs = append(prefs, domain.UserPreference{
			UserID:          userID,
			PreferenceKey:   kv.key,
			PreferenceValue: kv.value,
		})
	}

	return s.feedbackRepo.Record(ctx, interaction, prefs)
}
