// Package similarity provides the per-modality similarity measures used for cluster assignment.
package similarity

import "math"

// Cosine computes dot(a,b) / (|a|*|b|).
// Returns 0 when either norm is zero (an all-zero vector matches nothing, itself included)
// or when the lengths differ.
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

// HistogramIntersection sums the elementwise minimums of two normalized histograms.
// The result lies in [0,1] and is 1 exactly for identical distributions.
// Returns 0 when the lengths differ.
func HistogramIntersection(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var s float64
	for i := range a {
		s += math.Min(a[i], b[i])
	}
	return s
}
