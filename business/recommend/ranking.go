package recommend

import (
	"sort"
	"time"

	"fashionTrends/domain"
)

// scoredItem is an intermediate (item, score) pair flowing between the
// filters and the fusion step.
type scoredItem struct {
	ItemID uint64
	Score  float64
}

// rankScores turns an accumulator map into a descending list. Ties break on
// ascending item ID so repeated calls over the same state produce identical
// output.
func rankScores(scores map[uint64]float64) []scoredItem {
	ranked := make([]scoredItem, 0, len(scores))
	for itemID, score := range scores {
		ranked = append(ranked, scoredItem{ItemID: itemID, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ItemID < ranked[j].ItemID
	})

	return ranked
}

func truncate(ranked []scoredItem, topN int) []scoredItem {
	if topN < 0 {
		topN = 0
	}
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return ranked
}

// trendingCounts ranks items by raw interaction count inside the window.
// The hybrid trending term deliberately ignores weights and decay; it is a
// popularity vote, not a quality signal.
func trendingCounts(interactions []domain.UserInteraction, cutoff time.Time, topN int) []scoredItem {
	counts := make(map[uint64]float64)
	for _, i := range interactions {
		if i.Timestamp.Before(cutoff) {
			continue
		}
		counts[i.ItemID]++
	}

	return truncate(rankScores(counts), topN)
}
