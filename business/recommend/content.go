package recommend

import (
	"fashionTrends/business/scoring"
	"fashionTrends/domain"
)

// contentBasedFiltering ranks candidates by similarity between the user's
// aggregate feature profile and every catalog item. The profile is the
// column-wise mean over the feature rows of every interaction in the user's
// history; repeated interactions with an item inflate its influence
// proportionally, which is intentional.
func contentBasedFiltering(feat *scoring.ItemFeatureMatrix, history []domain.UserInteraction, topN int) []scoredItem {
	if feat.Empty() || len(history) == 0 {
		return nil
	}

	interacted := make(map[uint64]struct{})
	profileRows := make([][]float64, 0, len(history))

	for _, i := range history {
		row, ok := feat.Row(i.ItemID)
		if !ok {
			continue // stale item, not in the catalog snapshot
		}
		interacted[i.ItemID] = struct{}{}
		profileRows = append(profileRows, row)
	}

	if len(profileRows) == 0 {
		return nil
	}

	profile := make([]float64, len(profileRows[0]))
	for _, row := range profileRows {
		for c, v := range row {
			profile[c] += v
		}
	}
	for c := range profile {
		profile[c] /= float64(len(profileRows))
	}

	similarities := scoring.CosineAgainstRows(profile, feat.Rows)

	itemScores := make(map[uint64]float64, len(similarities))
	for idx, sim := range similarities {
		itemID := feat.ItemIDs[idx]
		if _, ok := interacted[itemID]; ok {
			continue
		}
		itemScores[itemID] = sim
	}

	return truncate(rankScores(itemScores), topN)
}
