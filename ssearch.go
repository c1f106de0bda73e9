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


package ssearch

import (
	"context"
	"log/slog"

	"github.com/poiesic/ssearch/ai"
	"github.com/poiesic/ssearch/ai/hashing"
	"github.com/poiesic/ssearch/ai/ollama"
	"github.com/poiesic/ssearch/ai/openai"
	"github.com/poiesic/ssearch/core"
	"github.com/poiesic/ssearch/search"
)

// NewProvider creates the AI provider for the configured backend.
// A nil config selects ai.DefaultConfig().
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if config == nil {
		config = ai.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Backend {
	case ai.BackendOpenAI:
		return openai.NewProvider(config)
	case ai.BackendHashing:
		return hashing.NewProvider(config)
	default:
		return ollama.NewProvider(config)
	}
}

// Engine owns an AI provider and the searcher built on it.
type Engine struct {
	provider ai.AIProvider
	searcher *search.Searcher
	logger   *slog.Logger
}

// NewEngine builds the provider described by config and a searcher around it.
// Failed embedding requests are retried as configured by config.MaxAttempts.
func NewEngine(config *ai.Config, opts ...search.Option) (*Engine, error) {
	if config == nil {
		config = ai.DefaultConfig()
	}
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	provider = ai.NewRetryProvider(provider, config.MaxAttempts, config.RetryDelay)
	return newEngine(provider, opts...)
}

func newEngine(provider ai.AIProvider, opts ...search.Option) (*Engine, error) {
	searcher, err := search.NewSearcher(provider, opts...)
	if err != nil {
		provider.Close()
		return nil, err
	}

	return &Engine{
		provider: provider,
		searcher: searcher,
		logger:   slog.Default(),
	}, nil
}

// Search runs one search.
func (e *Engine) Search(ctx context.Context, cfg core.SearchConfig) (*core.FilterResult, error) {
	return e.searcher.Search(ctx, cfg)
}

// SearchWithMonitor runs one search, reporting each stage to monitor.
func (e *Engine) SearchWithMonitor(ctx context.Context, cfg core.SearchConfig, monitor search.SearchMonitor) (*core.FilterResult, error) {
	return e.searcher.SearchWithMonitor(ctx, cfg, monitor)
}

// Searcher returns the underlying searcher.
func (e *Engine) Searcher() *search.Searcher {
	return e.searcher
}

// Close releases the AI provider.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
		return err
	}
	return nil
}
