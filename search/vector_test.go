package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func magnitude(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name     string
		input    []float32
		expected []float32
	}{
		{
			name:     "unit vector remains unchanged",
			input:    []float32{1.0, 0.0, 0.0},
			expected: []float32{1.0, 0.0, 0.0},
		},
		{
			name:     "scale non-unit vector",
			input:    []float32{3.0, 4.0},
			expected: []float32{0.6, 0.8},
		},
		{
			name:     "negative values",
			input:    []float32{-1.0, 1.0},
			expected: []float32{-1.0 / float32(math.Sqrt(2)), 1.0 / float32(math.Sqrt(2))},
		},
		{
			name:     "tiny values",
			input:    []float32{1e-20, 2e-20},
			expected: []float32{float32(1 / math.Sqrt(5)), float32(2 / math.Sqrt(5))},
		},
		{
			name:     "large values",
			input:    []float32{3e30, 4e30},
			expected: []float32{0.6, 0.8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizeVector(tt.input)
			require.NoError(t, err)
			require.Equal(t, len(tt.expected), len(result), "vector length mismatch")

			for i := range result {
				assert.InDelta(t, tt.expected[i], result[i], 1e-6, "element %d", i)
			}
			assert.InDelta(t, 1.0, magnitude(result), 1e-6, "magnitude should be 1.0")
		})
	}
}

func TestNormalizeVector_UnitNormProperty(t *testing.T) {
	// Deterministic pseudo-random vectors across a range of scales
	seed := uint32(7)
	next := func() float32 {
		seed = seed*1664525 + 1013904223
		return float32(int32(seed)) / float32(math.MaxInt32)
	}

	for n := 0; n < 200; n++ {
		dims := 1 + n%64
		scale := float32(math.Pow(10, float64(n%9-4)))
		v := make([]float32, dims)
		for i := range v {
			v[i] = next() * scale
		}
		if magnitude(v) == 0 {
			continue
		}

		result, err := NormalizeVector(v)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, magnitude(result), 1e-6, "vector %d", n)
	}
}

func TestNormalizeVector_DoesNotModifyInput(t *testing.T) {
	input := []float32{3, 4}
	_, err := NormalizeVector(input)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4}, input)
}

func TestNormalizeVector_ZeroVector(t *testing.T) {
	_, err := NormalizeVector([]float32{0.0, 0.0, 0.0})
	assert.ErrorIs(t, err, ErrZeroVector)
	assert.ErrorIs(t, err, ErrEmbedderContract)
}

func TestNormalizeVector_EmptyVector(t *testing.T) {
	_, err := NormalizeVector([]float32{})
	assert.ErrorIs(t, err, ErrZeroVector)
}

func TestNormalizeVector_NaN(t *testing.T) {
	_, err := NormalizeVector([]float32{float32(math.NaN()), 1})
	assert.ErrorIs(t, err, ErrZeroVector)
}

func TestDot(t *testing.T) {
	assert.InDelta(t, 11.0, Dot([]float32{1, 2}, []float32{3, 4}), 1e-9)
	assert.InDelta(t, 0.0, Dot([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, 0.0, Dot(nil, nil), 1e-9)
}

func TestClampUnit(t *testing.T) {
	assert.Equal(t, 1.0, clampUnit(1.0000001))
	assert.Equal(t, -1.0, clampUnit(-1.0000001))
	assert.Equal(t, 0.5, clampUnit(0.5))
}
