// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"context"
	"log/slog"
	"time"
)

// RetryWithBackoff retries an operation with exponential backoff.
// maxAttempts: maximum number of attempts (must be > 0)
// baseDelay: base delay between retries (doubles on each retry)
// Returns the error from the last attempt if all attempts fail, or the
// context error once ctx is done. Errors that Retryable rejects are
// returned at once.
func RetryWithBackoff(ctx context.Context, operation func() error, maxAttempts int, baseDelay time.Duration) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("embedding succeeded after retry", "attempt", attempt)
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !Retryable(lastErr) {
			return lastErr
		}

		slog.Debug("embedding failed, will retry", "attempt", attempt, "maxAttempts", maxAttempts, "error", lastErr)

		if attempt == maxAttempts {
			break
		}

		// baseDelay * 2^(attempt-1)
		delay := baseDelay << (attempt - 1)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}

// retryEmbedder re-sends a failed request, whole, up to maxAttempts times.
type retryEmbedder struct {
	next        Embedder
	maxAttempts int
	baseDelay   time.Duration
}

func (e *retryEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var vector []float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		vector, err = e.next.EmbedText(ctx, text)
		return err
	}, e.maxAttempts, e.baseDelay)
	return vector, err
}

func (e *retryEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = e.next.EmbedTexts(ctx, texts)
		return err
	}, e.maxAttempts, e.baseDelay)
	return vectors, err
}

// retryProvider wraps a provider's embedder with retries.
type retryProvider struct {
	AIProvider
	embedder *retryEmbedder
}

// NewRetryProvider returns a provider whose embedder retries failed calls
// with exponential backoff. A maxAttempts of 1 or less returns p unchanged.
func NewRetryProvider(p AIProvider, maxAttempts int, baseDelay time.Duration) AIProvider {
	if maxAttempts <= 1 {
		return p
	}
	return &retryProvider{
		AIProvider: p,
		embedder: &retryEmbedder{
			next:        p.Embedder(),
			maxAttempts: maxAttempts,
			baseDelay:   baseDelay,
		},
	}
}

func (p *retryProvider) Embedder() Embedder {
	return p.embedder
}
