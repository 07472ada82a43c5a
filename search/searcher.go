package search

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sift/choices"
)

// Searcher ranks a store's candidates against queries.
// A Searcher is not safe for concurrent use: searches are serialized by the
// caller, and the store must not be appended to while a search runs.
type Searcher struct {
	store   *choices.Store
	pool    *ants.Pool
	workers int
	results *Results
	logger  *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithWorkers sets the number of workers per search.
// Values below 1 select the default, runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			n = defaultWorkers()
		}
		s.workers = n
		return nil
	}
}

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

func defaultWorkers() int {
	return max(runtime.NumCPU(), 1)
}

// NewSearcher creates a new searcher over store.
func NewSearcher(store *choices.Store, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	s := &Searcher{
		store:   store,
		workers: defaultWorkers(),
		results: newResults("", nil, 0),
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(s.workers, ants.WithPanicHandler(s.workerPanicked))
	if err != nil {
		return nil, err
	}
	s.pool = pool

	return s, nil
}

// Workers returns the number of workers used per search.
func (s *Searcher) Workers() int {
	return s.workers
}

// Results returns the ranking published by the most recent search.
// Before the first search it is empty.
func (s *Searcher) Results() *Results {
	return s.results
}

// Search ranks every candidate in the store against query and publishes the
// result, replacing the previous one.
func (s *Searcher) Search(query string) *Results {
	return s.SearchWithMonitor(query, nil)
}

// SearchWithMonitor is like Search but reports progress to monitor.
func (s *Searcher) SearchWithMonitor(query string, monitor SearchMonitor) *Results {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	// Previous results are invalid from here on.
	s.results = nil

	started := time.Now()
	total := s.store.Len()
	monitor.Start(query, total)

	j := &job{
		store:   s.store,
		query:   query,
		workers: make([]*worker, s.workers),
		monitor: monitor,
	}
	for i := range j.workers {
		j.workers[i] = newWorker(i, j)
	}

	// Submit last to first: a worker only ever waits on higher-indexed
	// siblings, which must already be running.
	for i := len(j.workers) - 1; i >= 0; i-- {
		if err := s.pool.Submit(j.workers[i].run); err != nil {
			s.logger.Error("error starting search worker", "worker", i, "err", err)
			panic(fmt.Errorf("%w: %w", ErrWorkerStart, err))
		}
	}

	root := j.workers[0]
	<-root.done

	s.results = newResults(query, root.result, total)
	monitor.Finish(s.results)

	s.logger.Debug("search complete",
		"query", query,
		"candidates", total,
		"matches", s.results.Available(),
		"workers", s.workers,
		"elapsed", time.Since(started))

	return s.results
}

// Release stops the worker pool. The Searcher must not be used afterwards.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// workerPanicked aborts the process. A worker that dies never signals its
// merge partner, so the search could not complete.
func (s *Searcher) workerPanicked(p any) {
	s.logger.Error("search worker panicked", "panic", p)
	panic(p)
}
