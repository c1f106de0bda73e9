package search

import (
	"cmp"
	"slices"

	"github.com/poiesic/ssearch/core"
)

// FilterAndCap keeps results with similarity >= threshold, orders them by
// similarity descending and truncates to maxResults.
//
// Equal scores keep their input order (stable sort), which makes output
// deterministic for a given enumeration order. Total and Matched always
// reflect the full input, even when the cap empties Kept. A negative
// maxResults is treated as zero.
func FilterAndCap(scored []core.ScoredResult, threshold float64, maxResults int) *core.FilterResult {
	kept := make([]core.ScoredResult, 0, len(scored))
	for _, r := range scored {
		if r.Similarity >= threshold {
			kept = append(kept, r)
		}
	}
	matched := len(kept)

	slices.SortStableFunc(kept, func(a, b core.ScoredResult) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})

	limit := max(maxResults, 0)
	if len(kept) > limit {
		kept = kept[:limit]
	}

	return &core.FilterResult{
		Kept:    kept,
		Total:   len(scored),
		Matched: matched,
	}
}
