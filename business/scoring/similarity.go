package scoring

import "math"

// Cosine computes the cosine similarity between two equal-length vectors.
// A zero vector on either side yields 0 rather than dividing by zero.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CosineAgainstRows computes the cosine similarity of vec against every row
// of rows, in row order.
func CosineAgainstRows(vec []float64, rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = Cosine(vec, row)
	}

	return out
}
