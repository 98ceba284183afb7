package recommend

import (
	"math"
	"testing"
	"time"

	"fashionTrends/business/scoring"
	"fashionTrends/domain"
)

func buildMatrix(t *testing.T, interactions []domain.UserInteraction) *scoring.UserItemMatrix {
	t.Helper()
	return scoring.BuildUserItemMatrix(interactions)
}

func TestCollaborativeFiltering(t *testing.T) {
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// User 1 viewed item 10. User 2 wishlisted item 10 and viewed item 30, so
	// their rows point the same way (cos = 5/sqrt(26) ~ 0.98). User 3 only
	// touched item 20 and is orthogonal to user 1.
	interactions := []domain.UserInteraction{
		{UserID: 1, ItemID: 10, InteractionType: domain.InteractionView, Timestamp: ts},
		{UserID: 2, ItemID: 10, InteractionType: domain.InteractionWishlist, Timestamp: ts},
		{UserID: 2, ItemID: 30, InteractionType: domain.InteractionView, Timestamp: ts},
		{UserID: 3, ItemID: 20, InteractionType: domain.InteractionPurchase, Timestamp: ts},
	}

	m := buildMatrix(t, interactions)

	got := collaborativeFiltering(m, 1, 10, 0.5, 5)

	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}
	if got[0].ItemID != 30 {
		t.Errorf("candidate = item %d, want 30", got[0].ItemID)
	}

	wantScore := 1.0 * (5.0 / math.Sqrt(26))
	if math.Abs(got[0].Score-wantScore) > 1e-9 {
		t.Errorf("score = %v, want %v", got[0].Score, wantScore)
	}
}

func TestCollaborativeFilteringThresholdIsExclusive(t *testing.T) {
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	interactions := []domain.UserInteraction{
		{UserID: 1, ItemID: 10, InteractionType: domain.InteractionView, Timestamp: ts},
		{UserID: 2, ItemID: 10, InteractionType: domain.InteractionWishlist, Timestamp: ts},
		{UserID: 2, ItemID: 30, InteractionType: domain.InteractionView, Timestamp: ts},
	}

	m := buildMatrix(t, interactions)

	row1, _ := m.UserRow(1)
	row2, _ := m.UserRow(2)
	sim := scoring.Cosine(row1, row2)

	// A neighbor sitting exactly on the threshold does not qualify.
	if got := collaborativeFiltering(m, 1, 10, sim, 5); len(got) != 0 {
		t.Errorf("neighbor at threshold contributed candidates: %+v", got)
	}
	if got := collaborativeFiltering(m, 1, 10, sim-1e-9, 5); len(got) == 0 {
		t.Error("neighbor just above threshold contributed nothing")
	}
}

func TestCollaborativeFilteringTopSimilarLimit(t *testing.T) {
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Users 2 and 3 are both similar to user 1 but user 2 is a closer match.
	// With topSimilar=1 only user 2's item 30 may surface; user 3's item 40
	// must not.
	interactions := []domain.UserInteraction{
		{UserID: 1, ItemID: 10, InteractionType: domain.InteractionPurchase, Timestamp: ts},
		{UserID: 2, ItemID: 10, InteractionType: domain.InteractionPurchase, Timestamp: ts},
		{UserID: 2, ItemID: 30, InteractionType: domain.InteractionView, Timestamp: ts},
		{UserID: 3, ItemID: 10, InteractionType: domain.InteractionPurchase, Timestamp: ts},
		{UserID: 3, ItemID: 40, InteractionType: domain.InteractionPurchase, Timestamp: ts},
	}

	m := buildMatrix(t, interactions)

	got := collaborativeFiltering(m, 1, 10, 0.5, 1)

	for _, rec := range got {
		if rec.ItemID == 40 {
			t.Errorf("item 40 from a user beyond the topSimilar cut surfaced: %+v", got)
		}
	}
	if len(got) != 1 || got[0].ItemID != 30 {
		t.Errorf("got %+v, want only item 30", got)
	}
}

func TestCollaborativeFilteringExcludesInteracted(t *testing.T) {
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Users 1 and 2 share the exact same history; nothing new to recommend.
	interactions := []domain.UserInteraction{
		{UserID: 1, ItemID: 10, InteractionType: domain.InteractionView, Timestamp: ts},
		{UserID: 2, ItemID: 10, InteractionType: domain.InteractionView, Timestamp: ts},
	}

	m := buildMatrix(t, interactions)

	if got := collaborativeFiltering(m, 1, 10, 0.5, 5); len(got) != 0 {
		t.Errorf("already-interacted items surfaced: %+v", got)
	}
}

func TestCollaborativeFilteringUnknownUser(t *testing.T) {
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	interactions := []domain.UserInteraction{
		{UserID: 1, ItemID: 10, InteractionType: domain.InteractionView, Timestamp: ts},
	}

	m := buildMatrix(t, interactions)

	if got := collaborativeFiltering(m, 99, 10, 0.5, 5); got != nil {
		t.Errorf("unknown user produced candidates: %+v", got)
	}
	if got := collaborativeFiltering(scoring.BuildUserItemMatrix(nil), 1, 10, 0.5, 5); got != nil {
		t.Errorf("empty matrix produced candidates: %+v", got)
	}
}
