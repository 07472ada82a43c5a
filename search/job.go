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


package search

import (
	"slices"
	"sync"

	"github.com/poiesic/sift/choices"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/match"
)

// BatchSize is the number of candidates a worker claims at a time.
const BatchSize = 512

// job is the state shared by the workers of one search.
type job struct {
	mu        sync.Mutex
	processed int // Next unclaimed candidate index, guarded by mu

	store   *choices.Store
	query   string
	workers []*worker
	monitor SearchMonitor
}

// nextBatch claims the next range of candidates. start == end means the
// corpus is exhausted.
func (j *job) nextBatch() (start, end int) {
	j.mu.Lock()
	defer j.mu.Unlock()

	start = j.processed
	j.processed = min(j.processed+BatchSize, j.store.Len())
	return start, j.processed
}

// worker owns its result list until a lower-indexed worker merges it.
type worker struct {
	id      int
	job     *job
	result  []core.ScoredResult
	batches int
	done    chan struct{}
}

func newWorker(id int, j *job) *worker {
	return &worker{
		id:  id,
		job: j,
		// Sized for the case where every candidate matches.
		result: make([]core.ScoredResult, 0, j.store.Len()),
		done:   make(chan struct{}),
	}
}

func (w *worker) run() {
	j := w.job
	var scorer match.Scorer
	for {
		start, end := j.nextBatch()
		if start == end {
			break
		}
		w.batches++
		for _, c := range j.store.Slice(start, end) {
			if !match.HasMatch(j.query, c.Text) {
				continue
			}
			w.result = append(w.result, core.ScoredResult{
				Candidate: c,
				Score:     scorer.Score(j.query, c.Text),
			})
		}
	}

	slices.SortFunc(w.result, core.CompareScoredResults)
	j.monitor.WorkerFinished(w.id, w.batches, len(w.result))

	// Fan in: merge with w+1, w+2, w+4, ... for as long as w is aligned to
	// twice the stride. Siblings were submitted before w, and closing done is
	// the hand-off of their result list.
	for stride := 1; w.id%(2*stride) == 0; stride *= 2 {
		sib := w.id + stride
		if sib >= len(j.workers) {
			break
		}
		sibling := j.workers[sib]
		<-sibling.done
		w.result = merge(w.result, sibling.result)
		sibling.result = nil
		j.monitor.Merged(w.id, sib, len(w.result))
	}

	// Not deferred: a worker that panics must never release its waiter,
	// so nothing is published before the pool's panic handler aborts.
	close(w.done)
}

// merge combines two sorted lists into a new sorted list.
func merge(a, b []core.ScoredResult) []core.ScoredResult {
	out := make([]core.ScoredResult, 0, len(a)+len(b))
	i, k := 0, 0
	for i < len(a) && k < len(b) {
		if core.CompareScoredResults(a[i], b[k]) <= 0 {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[k])
			k++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[k:]...)
}
