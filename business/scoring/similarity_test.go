package scoring

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	cases := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical vectors", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"opposite vectors", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"orthogonal vectors", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"zero vector left", []float64{0, 0}, []float64{1, 2}, 0.0},
		{"zero vector right", []float64{1, 2}, []float64{0, 0}, 0.0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0.0},
		{"empty vectors", nil, nil, 0.0},
		{"scaled vectors keep similarity", []float64{1, 2, 3}, []float64{2, 4, 6}, 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Cosine(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Cosine(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestCosineAgainstRows(t *testing.T) {
	vec := []float64{1, 0}
	rows := [][]float64{
		{1, 0},
		{0, 1},
		{-1, 0},
	}

	got := CosineAgainstRows(vec, rows)
	want := []float64{1, 0, -1}

	if len(got) != len(want) {
		t.Fatalf("got %d similarities, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("similarity[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
