package search

import (
	"github.com/poiesic/ssearch/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(cfg core.SearchConfig)
	AfterEnumeration(candidates []core.Candidate)
	AfterContentRead(candidates []core.Candidate, degraded int)
	AfterRanking(scored []core.ScoredResult)
	Finish(result *core.FilterResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.SearchConfig) {}
func (n *noopMonitor) AfterEnumeration(_ []core.Candidate) {}
func (n *noopMonitor) AfterContentRead(_ []core.Candidate, _ int) {}
func (n *noopMonitor) AfterRanking(_ []core.ScoredResult) {}
func (n *noopMonitor) Finish(_ *core.FilterResult) {}
