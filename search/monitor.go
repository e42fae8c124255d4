package search

import "github.com/ltejedor/aihacks/core"

// Monitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps during a search.
type Monitor interface {
	Start(query string)
	AfterEmbedding(vector []float32)
	AfterSimilaritySearch(matches []*core.RowMatch)
	Finish(results []*core.RowMatch)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                           {}
func (n *noopMonitor) AfterEmbedding(_ []float32)               {}
func (n *noopMonitor) AfterSimilaritySearch(_ []*core.RowMatch) {}
func (n *noopMonitor) Finish(_ []*core.RowMatch)                {}
