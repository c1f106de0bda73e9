package search

import (
	"fmt"
	"math"
)

// NormalizeVector scales v to unit L2 length and returns a new vector.
// The magnitude is accumulated in float64 to keep the result within 1e-6
// of unit length. A zero or empty vector cannot be normalized and yields
// ErrZeroVector.
func NormalizeVector(v []float32) ([]float32, error) {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	magnitude := math.Sqrt(sumSquares)

	if magnitude == 0 || math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return nil, fmt.Errorf("%w: %w (length %d)", ErrEmbedderContract, ErrZeroVector, len(v))
	}

	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = float32(float64(val) / magnitude)
	}
	return result, nil
}

// Dot returns the dot product of two equal-length vectors.
// For unit vectors this is their cosine similarity.
func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// clampUnit bounds rounding drift so cosine similarity stays within [-1, 1].
func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
