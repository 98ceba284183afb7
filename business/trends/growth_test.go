package trends

import (
	"testing"
	"time"

	"fashionTrends/domain"
)

func TestGrowthRates(t *testing.T) {
	items := map[uint64]domain.FashionItem{
		10: {ID: 10, Category: "dress"},
		20: {ID: 20, Category: "shoes"},
		30: {ID: 30, Category: "hats"},
	}

	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	g := &growthCounts{
		itemsByID: items,
		recent: []domain.UserInteraction{
			{ItemID: 10, Timestamp: ts},
			{ItemID: 10, Timestamp: ts},
			{ItemID: 10, Timestamp: ts},
			{ItemID: 20, Timestamp: ts},
		},
		previous: []domain.UserInteraction{
			{ItemID: 10, Timestamp: ts},
			{ItemID: 10, Timestamp: ts},
			{ItemID: 30, Timestamp: ts},
		},
	}

	rates := g.rates(itemCategory)

	// 2 -> 3 is +50%.
	if rates["dress"] != 50.0 {
		t.Errorf("dress growth = %v, want 50.0", rates["dress"])
	}
	// New this week: 100% by convention.
	if rates["shoes"] != 100.0 {
		t.Errorf("shoes growth = %v, want 100.0", rates["shoes"])
	}
	// Vanished this week: -100%.
	if rates["hats"] != -100.0 {
		t.Errorf("hats growth = %v, want -100.0", rates["hats"])
	}
}

func TestGrowthRatesRounding(t *testing.T) {
	items := map[uint64]domain.FashionItem{
		10: {ID: 10, Category: "dress"},
	}
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	g := &growthCounts{
		itemsByID: items,
		recent: []domain.UserInteraction{
			{ItemID: 10, Timestamp: ts},
			{ItemID: 10, Timestamp: ts},
			{ItemID: 10, Timestamp: ts},
			{ItemID: 10, Timestamp: ts},
		},
		previous: []domain.UserInteraction{
			{ItemID: 10, Timestamp: ts},
			{ItemID: 10, Timestamp: ts},
			{ItemID: 10, Timestamp: ts},
		},
	}

	// (4-3)/3 * 100 = 33.333... rounds to 33.33.
	if got := g.rates(itemCategory)["dress"]; got != 33.33 {
		t.Errorf("dress growth = %v, want 33.33", got)
	}
}

func TestGrowthRatesIgnoreUnknownItems(t *testing.T) {
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	g := &growthCounts{
		itemsByID: map[uint64]domain.FashionItem{},
		recent: []domain.UserInteraction{
			{ItemID: 99, Timestamp: ts},
		},
	}

	if rates := g.rates(itemCategory); len(rates) != 0 {
		t.Errorf("unknown items produced growth entries: %+v", rates)
	}
}
