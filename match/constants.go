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

// MaxLen is the longest candidate the aligner will score. Longer candidates
// can still pass HasMatch but always score core.ScoreMin.
const MaxLen = 1024

const (
	ScoreGapLeading  core.Score = -0.005
	ScoreGapTrailing core.Score = -0.005
	ScoreGapInner    core.Score = -0.01

	ScoreMatchConsecutive core.Score = 1.0
	ScoreMatchSlash       core.Score = 0.9
	ScoreMatchWord        core.Score = 0.8
	ScoreMatchCapital     core.Score = 0.7
	ScoreMatchDot         core.Score = 0.6
)
