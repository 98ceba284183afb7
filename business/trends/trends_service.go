package trends

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fashionTrends/business/scoring"
	"fashionTrends/domain"
	"fashionTrends/pkg/config"
	"fashionTrends/pkg/logger"
)

// ItemRepository contract interface
type ItemRepository interface {
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.FashionItem, error)
	FindBySeason(ctx context.Context, season string) ([]domain.FashionItem, error)
	ReplaceTrendingScores(ctx context.Context, scores map[uint64]float64) error
}

// InteractionRepository contract interface
type InteractionRepository interface {
	Query(ctx context.Context, filter domain.InteractionFilter) ([]domain.UserInteraction, error)
}

const (
	dimensionTrendLimit = 10
	topItemsLimit       = 20
	seasonalItemsLimit  = 15
	growthWindowDays    = 7
)

type trendService struct {
	itemRepo        ItemRepository
	interactionRepo InteractionRepository
	cfg             config.EngineConfig
	now             func() time.Time
}

func NewTrendService(itemRepo ItemRepository, interactionRepo InteractionRepository, cfg config.EngineConfig) *trendService {
	return &trendService{
		itemRepo:        itemRepo,
		interactionRepo: interactionRepo,
		cfg:             cfg,
		now:             time.Now,
	}
}

// AnalyzeTrends aggregates decayed interaction weights over the window per
// category, style, color and brand, plus the top trending items. Category
// and style entries additionally carry a week-over-week growth rate.
func (s *trendService) AnalyzeTrends(ctx context.Context, days int) (domain.TrendReport, error) {
	now := s.now()
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	recent, err := s.interactionRepo.Query(ctx, domain.InteractionFilter{Since: &cutoff})
	if err != nil {
		return domain.TrendReport{}, fmt.Errorf("failed to query interactions: %w", err)
	}

	itemsByID, err := s.itemsFor(ctx, recent)
	if err != nil {
		return domain.TrendReport{}, err
	}

	growth, err := s.growthIndex(ctx, now)
	if err != nil {
		return domain.TrendReport{}, err
	}

	report := domain.TrendReport{
		ByCategory: analyzeDimension(recent, itemsByID, now, itemCategory, growth.rates(itemCategory)),
		ByStyle:    analyzeDimension(recent, itemsByID, now, itemStyle, growth.rates(itemStyle)),
		ByColor:    analyzeDimension(recent, itemsByID, now, itemColor, nil),
		ByBrand:    analyzeDimension(recent, itemsByID, now, itemBrand, nil),
		TopItems:   topTrendingItems(recent, itemsByID, now, topItemsLimit),
	}

	return report, nil
}

// SeasonalTrends restricts the catalog to one season and ranks its items by
// decayed interaction weight over a fixed 30-day window.
func (s *trendService) SeasonalTrends(ctx context.Context, season string) ([]domain.TrendingItem, error) {
	items, err := s.itemRepo.FindBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load seasonal items: %w", err)
	}
	if len(items) == 0 {
		return []domain.TrendingItem{}, nil
	}

	itemsByID := make(map[uint64]domain.FashionItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	now := s.now()
	cutoff := now.Add(-time.Duration(s.cfg.SeasonalWindowDays) * 24 * time.Hour)

	interactions, err := s.interactionRepo.Query(ctx, domain.InteractionFilter{Since: &cutoff})
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}

	seasonal := interactions[:0:0]
	for _, i := range interactions {
		if _, ok := itemsByID[i.ItemID]; ok {
			seasonal = append(seasonal, i)
		}
	}

	return topTrendingItems(seasonal, itemsByID, now, seasonalItemsLimit), nil
}

// UpdateTrendingScores resets every catalog item's trending score to zero and
// writes back max-normalized weights for the current top items, all in one
// transaction. With no top items nothing is modified. Returns how many items
// were scored.
func (s *trendService) UpdateTrendingScores(ctx context.Context) (int, error) {
	report, err := s.AnalyzeTrends(ctx, s.cfg.TrendWindowDays)
	if err != nil {
		return 0, err
	}

	if len(report.TopItems) == 0 {
		logger.Info("No trending items in window, trending scores unchanged")
		return 0, nil
	}

	// TopItems is sorted by weight descending, so the max is the head.
	maxScore := report.TopItems[0].TrendScore

	scores := make(map[uint64]float64, len(report.TopItems))
	for _, item := range report.TopItems {
		scores[item.ItemID] = item.TrendScore / maxScore
	}

	if err := s.itemRepo.ReplaceTrendingScores(ctx, scores); err != nil {
		return 0, fmt.Errorf("failed to persist trending scores: %w", err)
	}

	logger.Info("Updated trending scores", "items", len(scores))

	return len(scores), nil
}

func (s *trendService) itemsFor(ctx context.Context, interactions []domain.UserInteraction) (map[uint64]domain.FashionItem, error) {
	if len(interactions) == 0 {
		return map[uint64]domain.FashionItem{}, nil
	}

	idSet := make(map[uint64]struct{}, len(interactions))
	ids := make([]uint64, 0, len(interactions))
	for _, i := range interactions {
		if _, ok := idSet[i.ItemID]; ok {
			continue
		}
		idSet[i.ItemID] = struct{}{}
		ids = append(ids, i.ItemID)
	}

	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	itemsByID := make(map[uint64]domain.FashionItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	return itemsByID, nil
}

func itemCategory(item domain.FashionItem) string { return item.Category }
func itemStyle(item domain.FashionItem) string    { return item.Style }
func itemColor(item domain.FashionItem) string    { return item.Color }
func itemBrand(item domain.FashionItem) string    { return item.Brand }

// analyzeDimension counts interactions and sums decayed weights per distinct
// attribute value, then ranks by summed weight. Items missing the attribute
// are excluded from this dimension. growthRates may be nil for dimensions
// without a growth signal.
func analyzeDimension(
	interactions []domain.UserInteraction,
	itemsByID map[uint64]domain.FashionItem,
	now time.Time,
	attr func(domain.FashionItem) string,
	growthRates map[string]float64,
) []domain.DimensionTrend {
	counts := make(map[string]int)
	weights := make(map[string]float64)

	for _, i := range interactions {
		item, ok := itemsByID[i.ItemID]
		if !ok {
			continue
		}
		value := attr(item)
		if value == "" {
			continue
		}
		counts[value]++
		weights[value] += scoring.DecayedWeight(i, now)
	}

	entries := make([]domain.DimensionTrend, 0, len(counts))
	for value, count := range counts {
		entry := domain.DimensionTrend{
			Value:            value,
			InteractionCount: count,
			TrendScore:       weights[value],
		}
		if growthRates != nil {
			rate := growthRates[value]
			entry.GrowthRate = &rate
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TrendScore != entries[j].TrendScore {
			return entries[i].TrendScore > entries[j].TrendScore
		}
		if entries[i].InteractionCount != entries[j].InteractionCount {
			return entries[i].InteractionCount > entries[j].InteractionCount
		}
		return entries[i].Value < entries[j].Value
	})

	if len(entries) > dimensionTrendLimit {
		entries = entries[:dimensionTrendLimit]
	}

	return entries
}

// topTrendingItems ranks individual items by summed decayed weight, carrying
// the raw interaction count alongside.
func topTrendingItems(
	interactions []domain.UserInteraction,
	itemsByID map[uint64]domain.FashionItem,
	now time.Time,
	topN int,
) []domain.TrendingItem {
	type agg struct {
		score float64
		count int
	}

	itemAggs := make(map[uint64]*agg)
	for _, i := range interactions {
		if _, ok := itemsByID[i.ItemID]; !ok {
			continue
		}
		a, ok := itemAggs[i.ItemID]
		if !ok {
			a = &agg{}
			itemAggs[i.ItemID] = a
		}
		a.score += scoring.DecayedWeight(i, now)
		a.count++
	}

	ranked := make([]domain.TrendingItem, 0, len(itemAggs))
	for itemID, a := range itemAggs {
		item := itemsByID[itemID]
		ranked = append(ranked, domain.TrendingItem{
			ItemID:           itemID,
			Name:             item.Name,
			Category:         item.Category,
			Brand:            item.Brand,
			Style:            item.Style,
			Price:            item.Price,
			TrendScore:       a.score,
			InteractionCount: a.count,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TrendScore != ranked[j].TrendScore {
			return ranked[i].TrendScore > ranked[j].TrendScore
		}
		return ranked[i].ItemID < ranked[j].ItemID
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return ranked
}
