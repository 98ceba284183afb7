package scoring

import (
	"time"

	"fashionTrends/domain"
)

// Base weight per interaction type. Unknown types fall back to the view
// weight.
var baseWeights = map[string]float64{
	domain.InteractionView:     1.0,
	domain.InteractionLike:     3.0,
	domain.InteractionCart:     4.0,
	domain.InteractionWishlist: 5.0,
	domain.InteractionPurchase: 10.0,
}

// InteractionWeight maps an interaction to its scalar weight: the base weight
// for the type, scaled by rating/5 when a rating is present. No recency decay
// is applied here; collaborative filtering treats all history equally.
func InteractionWeight(i domain.UserInteraction) float64 {
	weight, ok := baseWeights[i.InteractionType]
	if !ok {
		weight = 1.0
	}

	if i.Rating != nil && *i.Rating > 0 {
		weight *= *i.Rating / 5.0
	}

	return weight
}

// DecayedWeight is InteractionWeight with the trend-context recency factor
// 1/(1 + age_days*0.1). Trend analysis privileges recent activity; the
// matrix-build path deliberately does not.
func DecayedWeight(i domain.UserInteraction, now time.Time) float64 {
	ageDays := int(now.Sub(i.Timestamp).Hours() / 24)
	if ageDays < 0 {
		ageDays = 0
	}

	return InteractionWeight(i) / (1.0 + float64(ageDays)*0.1)
}
