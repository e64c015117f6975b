package score

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"dimension mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty vectors", nil, nil, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosine_ScaleInvariant(t *testing.T) {
	a := []float32{0.5, 1.5, 2.5}
	scaled := []float32{5, 15, 25}
	if got := Cosine(a, scaled); math.Abs(got-1) > 1e-6 {
		t.Errorf("Cosine of scaled copy = %v, want 1", got)
	}
}

func TestSimilarityScore(t *testing.T) {
	tests := []struct {
		similarity float64
		want       float64
	}{
		{0.0, 0},
		{0.29, 0},
		{0.3, 30},
		{0.75, 75},
		{1.0, 100},
	}
	for _, tt := range tests {
		if got := SimilarityScore(tt.similarity); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SimilarityScore(%v) = %v, want %v", tt.similarity, got, tt.want)
		}
	}
}
