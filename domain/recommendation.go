package domain

// Recommendation is one ranked entry returned to the caller, the catalog
// record enriched with the hybrid score.
type Recommendation struct {
	ItemID              uint64  `json:"item_id"`
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	Brand               string  `json:"brand"`
	Price               float64 `json:"price"`
	Style               string  `json:"style"`
	Color               string  `json:"color"`
	ImageURL            string  `json:"image_url"`
	RecommendationScore float64 `json:"recommendation_score"`
	TrendingScore       float64 `json:"trending_score"`
}

// FeedbackEvent is a validated interaction payload from the feedback endpoint.
type FeedbackEvent struct {
	ItemID          uint64
	InteractionType string
	Rating          *float64
}
