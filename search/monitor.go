package search

import "github.com/poiesic/corpus/core"

// SearchMonitor provides hooks to observe the strategy chain.
// Implement this interface to track which strategies ran, failed, and
// ultimately answered a query.
type SearchMonitor interface {
	Start(query string)
	StrategyStart(strategy core.Strategy)
	StrategyError(strategy core.Strategy, err error)
	StrategyResults(strategy core.Strategy, results []*core.SearchResult)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                          {}
func (n *noopMonitor) StrategyStart(_ core.Strategy)                           {}
func (n *noopMonitor) StrategyError(_ core.Strategy, _ error)                  {}
func (n *noopMonitor) StrategyResults(_ core.Strategy, _ []*core.SearchResult) {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)                           {}
