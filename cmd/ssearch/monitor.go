package main

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/poiesic/ssearch/core"
	"github.com/poiesic/ssearch/search"
)

// logMonitor logs each search stage at debug level.
type logMonitor struct {
	logger  *slog.Logger
	started time.Time
}

var _ search.SearchMonitor = (*logMonitor)(nil)

func newLogMonitor(logger *slog.Logger) *logMonitor {
	return &logMonitor{logger: logger.With("component", "monitor")}
}

func (m *logMonitor) Start(cfg core.SearchConfig) {
	m.started = time.Now()
	m.logger.Debug("search started",
		"threshold", cfg.Threshold,
		"device", cfg.Device.String(),
		"content", cfg.Content,
		"recursive", cfg.Recursive,
		"max_results", cfg.MaxResults)
}

func (m *logMonitor) AfterEnumeration(candidates []core.Candidate) {
	m.logger.Debug("files enumerated", "count", humanize.Comma(int64(len(candidates))))
}

func (m *logMonitor) AfterContentRead(candidates []core.Candidate, degraded int) {
	var total int
	for _, c := range candidates {
		total += len(c.Excerpt)
	}
	m.logger.Debug("content read",
		"bytes", humanize.Bytes(uint64(total)),
		"name_only", degraded)
}

func (m *logMonitor) AfterRanking(scored []core.ScoredResult) {
	m.logger.Debug("candidates scored", "count", len(scored))
}

func (m *logMonitor) Finish(result *core.FilterResult) {
	m.logger.Debug("search finished",
		"kept", len(result.Kept),
		"matched", result.Matched,
		"total", result.Total,
		"elapsed", time.Since(m.started).Round(time.Millisecond))
}
