package search

import (
	"context"
	"fmt"

	"github.com/poiesic/ssearch/ai"
	"github.com/poiesic/ssearch/core"
)

// Rank scores each candidate by cosine similarity to the query.
//
// The query and every candidate text go to the embedder in one EmbedTexts
// call, so all vectors come from the same model pass. Vectors are
// normalized to unit length and scored by dot product. The result keeps the
// candidate order; sorting belongs to FilterAndCap.
//
// An empty candidate list returns an empty result without calling the
// embedder. Embedder failures wrap ErrEmbedding; malformed output wraps
// ErrEmbedderContract.
func Rank(ctx context.Context, embedder ai.Embedder, query string, candidates []core.Candidate) ([]core.ScoredResult, error) {
	if len(candidates) == 0 {
		return []core.ScoredResult{}, nil
	}

	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, query)
	for _, c := range candidates {
		texts = append(texts, c.Text())
	}

	vectors, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: %w: sent %d texts, received %d vectors",
			ErrEmbedderContract, ErrBatchSizeMismatch, len(texts), len(vectors))
	}

	normalized, err := normalizeBatch(vectors)
	if err != nil {
		return nil, err
	}

	q := normalized[0]
	scored := make([]core.ScoredResult, len(candidates))
	for i, c := range candidates {
		scored[i] = core.ScoredResult{
			Candidate:  c,
			Similarity: clampUnit(Dot(normalized[i+1], q)),
		}
	}
	return scored, nil
}

// normalizeBatch normalizes every vector and checks they share one dimension.
// Index 0 is the query.
func normalizeBatch(vectors [][]float32) ([][]float32, error) {
	dims := len(vectors[0])
	out := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dims {
			return nil, fmt.Errorf("%w: %w: vector %d has %d dimensions, expected %d",
				ErrEmbedderContract, ErrDimensionMismatch, i, len(v), dims)
		}
		n, err := NormalizeVector(v)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}
