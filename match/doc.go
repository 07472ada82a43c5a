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


// Package match scores a query against a candidate line.
//
// Scoring is a subsequence alignment computed with dynamic programming over a
// (query x candidate) grid. Two quantities are tracked per cell:
//   - D: the best score of an alignment that ends with a match at this position
//   - M: the best score of any alignment using the candidate up to this position
//
// Matches are rewarded with a per-position bonus that favors the start of
// words (after '/', '-', '_', ' ', '.', or a lower-to-upper case change) and
// with a bonus for consecutive matches. Gaps are penalized, with leading and
// trailing gaps cheaper than gaps between matched characters.
//
// HasMatch is a cheap case-insensitive subsequence filter and must be called
// before Score: Score assumes the query is a subsequence of the candidate.
//
// Matching is byte oriented with ASCII case folding. Positions reported by
// Positions are byte offsets into the candidate.
package match
