package recommend

import (
	"sort"

	"fashionTrends/business/scoring"
)

// collaborativeFiltering ranks candidate items for a user by weighted votes
// from similar users: keep users above the similarity threshold, take the
// strongest topSimilar of them, then accumulate their interaction weights
// scaled by similarity for every item the target user has not touched.
//
// A user absent from the matrix (or an empty matrix) yields no candidates;
// new and inactive users simply carry no collaborative signal.
func collaborativeFiltering(m *scoring.UserItemMatrix, userID uint, topN int, simThreshold float64, topSimilar int) []scoredItem {
	if m.Empty() {
		return nil
	}

	targetRow, ok := m.UserRow(userID)
	if !ok {
		return nil
	}

	similarities := scoring.CosineAgainstRows(targetRow, m.Rows)

	type similarUser struct {
		rowIdx     int
		similarity float64
	}

	similar := make([]similarUser, 0)
	for idx, sim := range similarities {
		if m.Users[idx] == userID {
			continue
		}
		if sim > simThreshold {
			similar = append(similar, similarUser{rowIdx: idx, similarity: sim})
		}
	}

	// Stable keeps the original row order on equal similarity.
	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].similarity > similar[j].similarity
	})
	if len(similar) > topSimilar {
		similar = similar[:topSimilar]
	}

	itemScores := make(map[uint64]float64)
	for _, su := range similar {
		row := m.Rows[su.rowIdx]
		for col, weight := range row {
			if weight <= 0 {
				continue
			}
			if targetRow[col] > 0 {
				continue // already interacted
			}
			itemScores[m.Items[col]] += weight * su.similarity
		}
	}

	return truncate(rankScores(itemScores), topN)
}
