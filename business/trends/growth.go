package trends

import (
	"context"
	"fmt"
	"math"
	"time"

	"fashionTrends/domain"
)

// growthCounts holds per-attribute interaction counts for the last week and
// the week before it, built from one batched two-week fetch instead of
// re-querying the log per dimension value.
type growthCounts struct {
	itemsByID map[uint64]domain.FashionItem
	recent    []domain.UserInteraction
	previous  []domain.UserInteraction
}

// growthIndex fetches the last 14 days of interactions once and splits them
// at the 7-day boundary.
func (s *trendService) growthIndex(ctx context.Context, now time.Time) (*growthCounts, error) {
	weekAgo := now.Add(-growthWindowDays * 24 * time.Hour)
	twoWeeksAgo := now.Add(-2 * growthWindowDays * 24 * time.Hour)

	fortnight, err := s.interactionRepo.Query(ctx, domain.InteractionFilter{Since: &twoWeeksAgo})
	if err != nil {
		return nil, fmt.Errorf("failed to query growth window: %w", err)
	}

	g := &growthCounts{}
	for _, i := range fortnight {
		if i.Timestamp.Before(weekAgo) {
			g.previous = append(g.previous, i)
		} else {
			g.recent = append(g.recent, i)
		}
	}

	g.itemsByID, err = s.itemsFor(ctx, fortnight)
	if err != nil {
		return nil, err
	}

	return g, nil
}

// rates computes the week-over-week growth percentage for every attribute
// value seen in the two-week window. A value with no previous-week activity
// grows 100% if it has recent activity, otherwise 0%.
func (g *growthCounts) rates(attr func(domain.FashionItem) string) map[string]float64 {
	recentCounts := g.countByValue(g.recent, attr)
	previousCounts := g.countByValue(g.previous, attr)

	out := make(map[string]float64, len(recentCounts)+len(previousCounts))
	for value := range previousCounts {
		out[value] = 0
	}
	for value := range recentCounts {
		out[value] = 0
	}

	for value := range out {
		recent := recentCounts[value]
		previous := previousCounts[value]

		switch {
		case previous == 0 && recent > 0:
			out[value] = 100.0
		case previous == 0:
			out[value] = 0.0
		default:
			rate := float64(recent-previous) / float64(previous) * 100
			out[value] = math.Round(rate*100) / 100
		}
	}

	return out
}

func (g *growthCounts) countByValue(interactions []domain.UserInteraction, attr func(domain.FashionItem) string) map[string]int {
	counts := make(map[string]int)
	for _, i := range interactions {
		item, ok := g.itemsByID[i.ItemID]
		if !ok {
			continue
		}
		if value := attr(item); value != "" {
			counts[value]++
		}
	}

	return counts
}
