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


package core

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for persisted entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// The same content will always produce the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Score is the result of aligning a query against a candidate.
// Higher is better. ScoreMin and ScoreMax are sentinels.
type Score float64

var (
	// ScoreMin means "no usable alignment"; it always ranks lowest.
	ScoreMin = Score(math.Inf(-1))

	// ScoreMax is returned for a candidate identical to the query (ignoring case).
	ScoreMax = Score(math.Inf(1))
)

// Candidate is one ingested line of text eligible for ranking.
// Text aliases the store's backing memory and is never copied or mutated.
type Candidate struct {
	Text  string
	Index int // Insertion position in the store, used for tie-breaks
}

// ScoredResult pairs a candidate with its score for one search.
type ScoredResult struct {
	Candidate Candidate
	Score     Score
}

// CompareScoredResults orders results by descending score, then by ascending
// insertion index. It is a total order suitable for slices.SortFunc.
func CompareScoredResults(a, b ScoredResult) int {
	switch {
	case a.Score > b.Score:
		return -1
	case a.Score < b.Score:
		return 1
	case a.Candidate.Index < b.Candidate.Index:
		return -1
	case a.Candidate.Index > b.Candidate.Index:
		return 1
	}
	return 0
}

// HistoryEntry records a query the user accepted and what it selected.
type HistoryEntry struct {
	Id        ID
	Query     string
	Selection string
	Uses      int       // Number of times this pair was accepted
	FirstUsed time.Time // When the pair was first accepted
	LastUsed  time.Time // When the pair was most recently accepted
}

// HistoryKey returns the content used to derive a history entry's ID.
func HistoryKey(query, selection string) string {
	return query + "\x00" + selection
}
