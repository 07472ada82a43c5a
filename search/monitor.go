package search

// SearchMonitor provides hooks to observe a search.
// WorkerFinished and Merged are called from worker goroutines concurrently,
// so implementations must be safe for concurrent use.
type SearchMonitor interface {
	Start(query string, candidates int)
	WorkerFinished(worker, batches, matches int)
	Merged(worker, sibling, size int)
	Finish(results *Results)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int) {}
func (n *noopMonitor) WorkerFinished(_, _, _ int) {}
func (n *noopMonitor) Merged(_, _, _ int) {}
func (n *noopMonitor) Finish(_ *Results) {}
