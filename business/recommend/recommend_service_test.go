package recommend

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"fashionTrends/domain"
	"fashionTrends/pkg/config"
)

type fakeItemRepo struct {
	items []domain.FashionItem
}

func (r *fakeItemRepo) FindAll(ctx context.Context) ([]domain.FashionItem, error) {
	return r.items, nil
}

func (r *fakeItemRepo) FindByID(ctx context.Context, id uint64) (domain.FashionItem, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.FashionItem{}, domain.ErrItemNotFound
}

type fakeInteractionRepo struct {
	interactions []domain.UserInteraction
}

func (r *fakeInteractionRepo) FindAll(ctx context.Context) ([]domain.UserInteraction, error) {
	return r.interactions, nil
}

type fakeFeedbackRepo struct {
	recorded []*domain.UserInteraction
	prefs    [][]domain.UserPreference
}

func (r *fakeFeedbackRepo) Record(ctx context.Context, interaction *domain.UserInteraction, prefs []domain.UserPreference) error {
	r.recorded = append(r.recorded, interaction)
	r.prefs = append(r.prefs, prefs)
	return nil
}

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		RecommendationTopN:  10,
		SimilarityThreshold: 0.5,
		TopSimilarUsers:     5,
		TrendWindowDays:     30,
		SeasonalWindowDays:  30,
	}
}

func newTestService(items []domain.FashionItem, interactions []domain.UserInteraction, now time.Time) (*recommendationService, *fakeFeedbackRepo) {
	feedback := &fakeFeedbackRepo{}
	svc := NewRecommendationService(
		&fakeItemRepo{items: items},
		&fakeInteractionRepo{interactions: interactions},
		feedback,
		testEngineConfig(),
	)
	svc.now = func() time.Time { return now }
	return svc, feedback
}

func TestGetRecommendationsTopNZero(t *testing.T) {
	svc, _ := newTestService(nil, nil, time.Now())

	recs, err := svc.GetRecommendations(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("topN=0 should return an empty slice, got %v", recs)
	}
}

func TestGetRecommendationsColdStart(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	items := []domain.FashionItem{
		{ID: 10, Name: "Red Dress", Category: "dress", Price: 40},
		{ID: 20, Name: "Black Shoes", Category: "shoes", Price: 120},
	}
	// User 1 has no history, so only the trending term can score.
	interactions := []domain.UserInteraction{
		{UserID: 2, ItemID: 10, InteractionType: domain.InteractionView, Timestamp: now.Add(-time.Hour)},
		{UserID: 2, ItemID: 10, InteractionType: domain.InteractionLike, Timestamp: now.Add(-2 * time.Hour)},
		{UserID: 3, ItemID: 10, InteractionType: domain.InteractionView, Timestamp: now.Add(-3 * time.Hour)},
		{UserID: 3, ItemID: 20, InteractionType: domain.InteractionView, Timestamp: now.Add(-4 * time.Hour)},
	}

	svc, _ := newTestService(items, interactions, now)

	recs, err := svc.GetRecommendations(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2: %+v", len(recs), recs)
	}

	if recs[0].ItemID != 10 || recs[0].Name != "Red Dress" {
		t.Errorf("top recommendation = %+v, want item 10", recs[0])
	}

	// Trending term is count/maxCount * 0.1: item 10 gets 3/3*0.1, item 20
	// gets 1/3*0.1.
	if math.Abs(recs[0].RecommendationScore-0.1) > 1e-9 {
		t.Errorf("item 10 score = %v, want 0.1", recs[0].RecommendationScore)
	}
	if math.Abs(recs[1].RecommendationScore-0.1/3) > 1e-9 {
		t.Errorf("item 20 score = %v, want %v", recs[1].RecommendationScore, 0.1/3)
	}
}

func TestGetRecommendationsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	items := []domain.FashionItem{
		{ID: 10, Category: "dress", Style: "casual", Color: "red", Brand: "a", Season: "summer", Price: 40},
		{ID: 20, Category: "dress", Style: "casual", Color: "red", Brand: "a", Season: "summer", Price: 45},
		{ID: 30, Category: "shoes", Style: "formal", Color: "black", Brand: "b", Season: "winter", Price: 120},
	}
	interactions := []domain.UserInteraction{
		{UserID: 1, ItemID: 10, InteractionType: domain.InteractionPurchase, Timestamp: now.Add(-time.Hour)},
		{UserID: 2, ItemID: 10, InteractionType: domain.InteractionPurchase, Timestamp: now.Add(-time.Hour)},
		{UserID: 2, ItemID: 20, InteractionType: domain.InteractionLike, Timestamp: now.Add(-time.Hour)},
		{UserID: 3, ItemID: 30, InteractionType: domain.InteractionView, Timestamp: now.Add(-time.Hour)},
	}

	svc, _ := newTestService(items, interactions, now)

	first, err := svc.GetRecommendations(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GetRecommendations(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same state produced different output:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestGetRecommendationsFusionPrefersMultiSignalItem(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	items := []domain.FashionItem{
		{ID: 10, Category: "dress", Style: "casual", Color: "red", Brand: "a", Season: "summer", Price: 40},
		{ID: 20, Category: "dress", Style: "casual", Color: "red", Brand: "a", Season: "summer", Price: 45},
		{ID: 30, Category: "shoes", Style: "formal", Color: "black", Brand: "b", Season: "winter", Price: 120},
	}
	// Item 20 draws a collaborative vote from the like-minded user 2, content
	// similarity to user 1's dress, and trending volume. Item 30 only trends.
	interactions := []domain.UserInteraction{
		{UserID: 1, ItemID: 10, InteractionType: domain.InteractionPurchase, Timestamp: now.Add(-time.Hour)},
		{UserID: 2, ItemID: 10, InteractionType: domain.InteractionPurchase, Timestamp: now.Add(-time.Hour)},
		{UserID: 2, ItemID: 20, InteractionType: domain.InteractionPurchase, Timestamp: now.Add(-time.Hour)},
		{UserID: 3, ItemID: 30, InteractionType: domain.InteractionView, Timestamp: now.Add(-time.Hour)},
	}

	svc, _ := newTestService(items, interactions, now)

	recs, err := svc.GetRecommendations(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("no recommendations returned")
	}
	if recs[0].ItemID != 20 {
		t.Errorf("top recommendation = item %d, want 20: %+v", recs[0].ItemID, recs)
	}

	// The trending term does not filter history, so the purchased item 10 may
	// reappear, but never above the multi-signal item.
	for i, rec := range recs {
		if rec.ItemID == 10 && i == 0 {
			t.Errorf("already-purchased item 10 ranked first: %+v", recs)
		}
	}
}

func TestGetRecommendationsReflectNewInteractions(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	items := []domain.FashionItem{
		{ID: 10, Category: "dress"},
		{ID: 20, Category: "shoes"},
	}
	interactionRepo := &fakeInteractionRepo{interactions: []domain.UserInteraction{
		{UserID: 2, ItemID: 10, InteractionType: domain.InteractionView, Timestamp: now.Add(-time.Hour)},
	}}

	svc := NewRecommendationService(&fakeItemRepo{items: items}, interactionRepo, &fakeFeedbackRepo{}, testEngineConfig())
	svc.now = func() time.Time { return now }

	before, err := svc.GetRecommendations(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(before) != 1 || before[0].ItemID != 10 {
		t.Fatalf("before = %+v, want only item 10", before)
	}

	// Matrices are rebuilt from the log on every call, so a fresh burst of
	// activity on item 20 shows up immediately.
	for i := 0; i < 3; i++ {
		interactionRepo.interactions = append(interactionRepo.interactions, domain.UserInteraction{
			UserID: 3, ItemID: 20, InteractionType: domain.InteractionView, Timestamp: now.Add(-time.Minute),
		})
	}

	after, err := svc.GetRecommendations(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(after) != 2 || after[0].ItemID != 20 {
		t.Errorf("after = %+v, want item 20 ranked first", after)
	}
}

func TestRecordFeedback(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	items := []domain.FashionItem{
		{ID: 10, Category: "dress", Style: "", Color: "red", Brand: "a"},
	}

	svc, feedback := newTestService(items, nil, now)

	rating := 4.0
	err := svc.RecordFeedback(context.Background(), 7, domain.FeedbackEvent{
		ItemID:          10,
		InteractionType: domain.InteractionLike,
		Rating:          &rating,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(feedback.recorded) != 1 {
		t.Fatalf("recorded %d interactions, want 1", len(feedback.recorded))
	}
	got := feedback.recorded[0]
	if got.UserID != 7 || got.ItemID != 10 || got.InteractionType != domain.InteractionLike {
		t.Errorf("recorded interaction = %+v", got)
	}
	if !got.Timestamp.Equal(now) {
		t.Errorf("interaction timestamp = %v, want %v", got.Timestamp, now)
	}
	if got.Rating == nil || *got.Rating != rating {
		t.Errorf("interaction rating = %v, want %v", got.Rating, rating)
	}

	// Empty style is skipped; category, color and brand bump.
	prefs := feedback.prefs[0]
	if len(prefs) != 3 {
		t.Fatalf("got %d preference bumps, want 3: %+v", len(prefs), prefs)
	}
	wantKeys := map[string]string{
		domain.PreferenceKeyCategory: "dress",
		domain.PreferenceKeyColor:    "red",
		domain.PreferenceKeyBrand:    "a",
	}
	for _, p := range prefs {
		if p.UserID != 7 {
			t.Errorf("preference user = %d, want 7", p.UserID)
		}
		if want, ok := wantKeys[p.PreferenceKey]; !ok || p.PreferenceValue != want {
			t.Errorf("unexpected preference %s=%s", p.PreferenceKey, p.PreferenceValue)
		}
	}
}

func TestRecordFeedbackUnknownItem(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	svc, feedback := newTestService(nil, nil, now)

	err := svc.RecordFeedback(context.Background(), 7, domain.FeedbackEvent{
		ItemID:          99,
		InteractionType: domain.InteractionView,
	})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("error = %v, want ErrItemNotFound", err)
	}

	// The interaction is still appended, with no preference bumps.
	if len(feedback.recorded) != 1 {
		t.Fatalf("recorded %d interactions, want 1", len(feedback.recorded))
	}
	if feedback.prefs[0] != nil {
		t.Errorf("preference bumps for unknown item: %+v", feedback.prefs[0])
	}
}
