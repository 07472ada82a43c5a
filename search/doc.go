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


// Package search ranks the candidates of a choices.Store against a query.
//
// A Searcher runs each search on a fixed-size worker pool that is reused
// across searches. The corpus is handed out in batches on demand, so workers
// that hit fewer expensive candidates simply claim more batches. Every worker
// filters its batches with match.HasMatch, scores the survivors, and sorts its
// own results. Sorted lists are then combined by a binary fan-in: worker w
// waits for worker w+1, w+2, w+4, ... (while w is a multiple of twice the
// stride) and merges their lists into its own, so worker 0 ends up holding the
// complete ranking.
//
// The ranking is fully deterministic: results are ordered by descending score
// and then by insertion order in the store, independent of worker count or
// scheduling.
//
// Search blocks until the ranking is complete. There is no cancellation; UI
// callers should search once per settled query rather than per keystroke.
package search
