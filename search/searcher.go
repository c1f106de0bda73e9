package search

import (
	"context"
	"io"
	"log/slog"
	"runtime"

	"github.com/poiesic/ssearch/ai"
	"github.com/poiesic/ssearch/core"
	"github.com/poiesic/ssearch/scan"
)

// Searcher runs the file ranking pipeline:
// enumerate, optionally read excerpts, rank, then filter and cap.
type Searcher struct {
	embedder ai.Embedder
	poolSize int
	progress io.Writer
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker count for content reads.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		s.poolSize = size
		return nil
	}
}

// WithProgress reports content read progress to w.
func WithProgress(w io.Writer) Option {
	return func(s *Searcher) error {
		s.progress = w
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(provider ai.AIProvider, opts ...Option) (*Searcher, error) {
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		embedder: provider.Embedder(),
		poolSize: max(runtime.NumCPU()/2, 1),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "searcher")

	return s, nil
}

// Search ranks the files described by cfg against cfg.Query.
func (s *Searcher) Search(ctx context.Context, cfg core.SearchConfig) (*core.FilterResult, error) {
	return s.SearchWithMonitor(ctx, cfg, nil)
}

// SearchWithMonitor ranks files with monitoring.
// The monitor receives callbacks at each stage of the search process.
// The configuration is validated before any filesystem or embedder work.
func (s *Searcher) SearchWithMonitor(ctx context.Context, cfg core.SearchConfig, monitor SearchMonitor) (*core.FilterResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	monitor.Start(cfg)

	// 1. Enumerate candidate files
	candidates, err := scan.EnumerateWithLogger(ctx, cfg.SearchDir, cfg.Recursive, s.logger)
	if err != nil {
		s.logger.Error("error enumerating files", "dir", cfg.SearchDir, "err", err)
		return nil, err
	}
	monitor.AfterEnumeration(candidates)

	// 2. Attach content excerpts
	if cfg.Content {
		reader := scan.NewExcerptReader(cfg.MaxContentSize,
			scan.WithPoolSize(s.poolSize),
			scan.WithProgress(s.progress),
			scan.WithLogger(s.logger),
		)
		var degraded int
		candidates, degraded, err = reader.Read(ctx, candidates)
		if err != nil {
			s.logger.Error("error reading file content", "err", err)
			return nil, err
		}
		monitor.AfterContentRead(candidates, degraded)
	}

	// 3. Embed and score
	scored, err := Rank(ctx, s.embedder, cfg.Query, candidates)
	if err != nil {
		s.logger.Error("error ranking candidates", "candidates", len(candidates), "err", err)
		return nil, err
	}
	monitor.AfterRanking(scored)

	// 4. Threshold, sort and cap
	result := FilterAndCap(scored, cfg.Threshold, cfg.MaxResults)
	monitor.Finish(result)

	return result, nil
}
