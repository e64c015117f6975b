package score

import "math"

// MinSimilarity is the cosine similarity below which an embedding match is
// treated as noise.
const MinSimilarity = 0.3

// similarityScale converts a 0-1 similarity into the 0-100 score range the
// ranking thresholds operate on.
const similarityScale = 100.0

// Cosine returns the cosine similarity of two vectors, or 0 when dimensions
// differ or either vector is zero.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// SimilarityScore maps a cosine similarity onto the relevance score range.
// Similarities under MinSimilarity score 0 so weak semantic matches fall
// through to the next scorer in the chain.
func SimilarityScore(similarity float64) float64 {
	if similarity < MinSimilarity {
		return 0
	}
	return similarity * similarityScale
}
