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


package match

import "github.com/poiesic/sift/core"

func toLower(ch byte) byte {
	if 'A' <= ch && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}

func equalFold(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if toLower(a[i]) != toLower(b[i]) {
			return false
		}
	}
	return true
}

// HasMatch reports whether every byte of needle appears in haystack in order,
// ignoring ASCII case.
func HasMatch(needle, haystack string) bool {
	j := 0
	for i := 0; i < len(needle); i++ {
		nch := toLower(needle[i])
		for {
			if j == len(haystack) {
				return false
			}
			hch := toLower(haystack[j])
			j++
			if hch == nch {
				break
			}
		}
	}
	return true
}

// Scorer holds scratch buffers for scoring. The zero value is ready to use.
// A Scorer must not be used by more than one goroutine at a time.
type Scorer struct {
	needle   []byte
	haystack []byte
	bonus    []core.Score

	// Rolling rows for Score.
	lastD, lastM []core.Score
	currD, currM []core.Score
}

// Score returns the alignment score of needle against haystack.
func Score(needle, haystack string) core.Score {
	var s Scorer
	return s.Score(needle, haystack)
}

// Positions scores needle against haystack and, when positions is non-nil,
// stores the byte offset of each matched needle character in it. positions
// must hold at least len(needle) elements. Positions are only written when
// the score is not core.ScoreMin.
func Positions(needle, haystack string, positions []int) core.Score {
	var s Scorer
	return s.Positions(needle, haystack, positions)
}

// setup lowercases both strings and precomputes bonuses. It returns a
// non-zero score when no dynamic programming is needed.
func (s *Scorer) setup(needle, haystack string) (core.Score, bool) {
	n, m := len(needle), len(haystack)
	if n == 0 {
		return core.ScoreMin, true
	}
	if m > MaxLen || n > m {
		// Unreasonably long candidates still match, they just rank last.
		return core.ScoreMin, true
	}
	if n == m {
		if !equalFold(needle, haystack) {
			return core.ScoreMin, true
		}
		return core.ScoreMax, true
	}

	s.needle = grow(s.needle, n)
	s.haystack = grow(s.haystack, m)
	s.bonus = grow(s.bonus, m)
	for i := 0; i < n; i++ {
		s.needle[i] = toLower(needle[i])
	}
	for j := 0; j < m; j++ {
		s.haystack[j] = toLower(haystack[j])
	}
	precomputeBonus(haystack, s.bonus)
	return 0, false
}

// matchRow computes row i of D and M from the previous row.
func (s *Scorer) matchRow(i int, currD, currM, lastD, lastM []core.Score) {
	n, m := len(s.needle), len(s.haystack)

	gap := ScoreGapInner
	if i == n-1 {
		gap = ScoreGapTrailing
	}

	prev := core.ScoreMin
	nch := s.needle[i]
	for j := 0; j < m; j++ {
		if nch != s.haystack[j] {
			currD[j] = core.ScoreMin
			prev += gap
			currM[j] = prev
			continue
		}

		score := core.ScoreMin
		if i == 0 {
			score = core.Score(j)*ScoreGapLeading + s.bonus[j]
		} else if j > 0 {
			score = max(lastM[j-1]+s.bonus[j], lastD[j-1]+ScoreMatchConsecutive)
		}
		currD[j] = score
		currM[j] = max(score, prev+gap)
		prev = currM[j]
	}
}

// Score is like the package level Score but reuses the Scorer's buffers.
func (s *Scorer) Score(needle, haystack string) core.Score {
	if score, done := s.setup(needle, haystack); done {
		return score
	}
	n, m := len(s.needle), len(s.haystack)

	s.lastD = grow(s.lastD, m)
	s.lastM = grow(s.lastM, m)
	s.currD = grow(s.currD, m)
	s.currM = grow(s.currM, m)

	lastD, lastM, currD, currM := s.lastD, s.lastM, s.currD, s.currM
	for i := 0; i < n; i++ {
		s.matchRow(i, currD, currM, lastD, lastM)
		lastD, currD = currD, lastD
		lastM, currM = currM, lastM
	}
	return lastM[m-1]
}

// Positions is like the package level Positions but reuses the Scorer's
// bonus and case-folding buffers. The full grid is allocated per call.
func (s *Scorer) Positions(needle, haystack string, positions []int) core.Score {
	score, done := s.setup(needle, haystack)
	if done {
		if score == core.ScoreMax && positions != nil {
			for i := range len(needle) {
				positions[i] = i
			}
		}
		return score
	}
	n, m := len(s.needle), len(s.haystack)

	D := make([][]core.Score, n)
	M := make([][]core.Score, n)
	cells := make([]core.Score, 2*n*m)
	for i := 0; i < n; i++ {
		D[i] = cells[2*i*m : (2*i+1)*m]
		M[i] = cells[(2*i+1)*m : (2*i+2)*m]
	}

	var lastD, lastM []core.Score
	for i := 0; i < n; i++ {
		s.matchRow(i, D[i], M[i], lastD, lastM)
		lastD, lastM = D[i], M[i]
	}

	if positions != nil {
		backtrace(D, M, positions)
	}
	return M[n-1][m-1]
}

// backtrace recovers one optimal alignment. Where several paths reach the
// optimal score, the latest candidate position is preferred.
func backtrace(D, M [][]core.Score, positions []int) {
	n := len(D)
	j := len(D[0]) - 1
	matchRequired := false
	for i := n - 1; i >= 0; i-- {
		for ; j >= 0; j-- {
			if D[i][j] == core.ScoreMin || !(matchRequired || D[i][j] == M[i][j]) {
				continue
			}
			// A consecutive-match score forces the previous row onto j-1.
			matchRequired = i > 0 && j > 0 &&
				M[i][j] == D[i-1][j-1]+ScoreMatchConsecutive
			positions[i] = j
			j--
			break
		}
	}
}

func grow[T any](buf []T, n int) []T {
	if cap(buf) < n {
		return make([]T, n, max(n, 2*cap(buf)))
	}
	return buf[:n]
}
