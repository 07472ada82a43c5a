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

// bonusStates is indexed by the class of the current character and then by
// the previous character. Class 0 (not alphanumeric) never earns a bonus.
var bonusStates [3][256]core.Score

// bonusIndex maps a character to its class: 1 for lowercase and digits, 2 for
// uppercase, 0 otherwise.
var bonusIndex [256]uint8

func init() {
	for _, state := range []int{1, 2} {
		bonusStates[state]['/'] = ScoreMatchSlash
		bonusStates[state]['-'] = ScoreMatchWord
		bonusStates[state]['_'] = ScoreMatchWord
		bonusStates[state][' '] = ScoreMatchWord
		bonusStates[state]['.'] = ScoreMatchDot
	}
	for ch := 'a'; ch <= 'z'; ch++ {
		bonusStates[2][ch] = ScoreMatchCapital
		bonusIndex[ch] = 1
	}
	for ch := 'A'; ch <= 'Z'; ch++ {
		bonusIndex[ch] = 2
	}
	for ch := '0'; ch <= '9'; ch++ {
		bonusIndex[ch] = 1
	}
}

func computeBonus(last, ch byte) core.Score {
	return bonusStates[bonusIndex[ch]][last]
}

// precomputeBonus fills bonus with the word-boundary reward of every position
// in haystack. The start of the string behaves as if preceded by '/'.
func precomputeBonus(haystack string, bonus []core.Score) {
	last := byte('/')
	for i := 0; i < len(haystack); i++ {
		ch := haystack[i]
		bonus[i] = computeBonus(last, ch)
		last = ch
	}
}
