package search

import (
	"iter"

	"github.com/poiesic/sift/core"
)

// Results is the ranked outcome of one search plus a selection cursor.
// It is read-only apart from the cursor and not safe for concurrent use.
type Results struct {
	query     string
	list      []core.ScoredResult
	total     int
	selection int
}

func newResults(query string, list []core.ScoredResult, total int) *Results {
	return &Results{
		query: query,
		list:  list,
		total: total,
	}
}

// Query returns the query these results were ranked for.
func (r *Results) Query() string {
	return r.query
}

// Available returns the number of ranked candidates.
func (r *Results) Available() int {
	return len(r.list)
}

// Total returns the size of the corpus when the search ran.
func (r *Results) Total() int {
	return r.total
}

// Get returns the candidate at rank, or false if rank >= Available().
func (r *Results) Get(rank int) (core.Candidate, bool) {
	if rank < 0 || rank >= len(r.list) {
		return core.Candidate{}, false
	}
	return r.list[rank].Candidate, true
}

// ScoreAt returns the score at rank.
// It panics if rank is out of range; check Available first.
func (r *Results) ScoreAt(rank int) core.Score {
	return r.list[rank].Score
}

// Ranked iterates over results in rank order.
func (r *Results) Ranked() iter.Seq2[int, core.ScoredResult] {
	return func(yield func(int, core.ScoredResult) bool) {
		for i, res := range r.list {
			if !yield(i, res) {
				return
			}
		}
	}
}

// Selection returns the rank of the selected result.
func (r *Results) Selection() int {
	return r.selection
}

// Selected returns the selected candidate, or false if there are no results.
func (r *Results) Selected() (core.Candidate, bool) {
	return r.Get(r.selection)
}

// SelectPrev moves the selection up one rank, wrapping to the bottom.
func (r *Results) SelectPrev() {
	if n := len(r.list); n > 0 {
		r.selection = (r.selection + n - 1) % n
	}
}

// SelectNext moves the selection down one rank, wrapping to the top.
func (r *Results) SelectNext() {
	if n := len(r.list); n > 0 {
		r.selection = (r.selection + 1) % n
	}
}
