package domain

// DimensionTrend is one ranked value within a trend dimension
// (category/style/color/brand). GrowthRate is only populated for the
// category and style dimensions.
type DimensionTrend struct {
	Value            string   `json:"value"`
	InteractionCount int      `json:"interaction_count"`
	TrendScore       float64  `json:"trend_score"`
	GrowthRate       *float64 `json:"growth_rate,omitempty"`
}

// TrendingItem is one ranked catalog item in a trend report.
type TrendingItem struct {
	ItemID           uint64  `json:"item_id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Brand            string  `json:"brand"`
	Style            string  `json:"style"`
	Price            float64 `json:"price"`
	TrendScore       float64 `json:"trend_score"`
	InteractionCount int     `json:"interaction_count"`
}

// TrendReport is the full output of a trend analysis run.
type TrendReport struct {
	ByCategory []DimensionTrend `json:"by_category"`
	ByStyle    []DimensionTrend `json:"by_style"`
	ByColor    []DimensionTrend `json:"by_color"`
	ByBrand    []DimensionTrend `json:"by_brand"`
	TopItems   []TrendingItem   `json:"top_items"`
}
