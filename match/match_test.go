package match

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/poiesic/sift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scoreDelta = 1e-9

func TestHasMatch(t *testing.T) {
	tests := []struct {
		needle   string
		haystack string
		want     bool
	}{
		{"a", "a", true},
		{"a", "ab", true},
		{"a", "ba", true},
		{"abc", "a|b|c", true},
		{"", "", true},
		{"", "a", true},
		{"A", "a", true},
		{"a", "A", true},
		{"mr", "src/main.rs", true},
		{"mr", "merge.c", true},
		{"a", "", false},
		{"ass", "tags", false},
		{"mr", "main.c", false},
		{"mr", "Makefile", false},
		{"ba", "ab", false},
	}

	for _, tt := range tests {
		t.Run(tt.needle+"/"+tt.haystack, func(t *testing.T) {
			assert.Equal(t, tt.want, HasMatch(tt.needle, tt.haystack))
		})
	}
}

func TestScore_Sentinels(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		assert.Equal(t, core.ScoreMin, Score("", ""))
		assert.Equal(t, core.ScoreMin, Score("", "a"))
		assert.Equal(t, core.ScoreMin, Score("", "src/main.rs"))
	})

	t.Run("exact match", func(t *testing.T) {
		assert.Equal(t, core.ScoreMax, Score("abc", "abc"))
		assert.Equal(t, core.ScoreMax, Score("aBc", "abC"))
	})

	t.Run("query longer than candidate", func(t *testing.T) {
		assert.Equal(t, core.ScoreMin, Score("abcd", "abc"))
	})

	t.Run("candidate too long", func(t *testing.T) {
		long := "a" + strings.Repeat("-", MaxLen)
		require.True(t, HasMatch("a", long))
		assert.Equal(t, core.ScoreMin, Score("a", long))
	})

	t.Run("candidate at max length is scored", func(t *testing.T) {
		atMax := "a" + strings.Repeat("-", MaxLen-1)
		assert.NotEqual(t, core.ScoreMin, Score("a", atMax))
	})

	t.Run("equal length but different", func(t *testing.T) {
		assert.Equal(t, core.ScoreMin, Score("abc", "abd"))
	})
}

func TestScore_Preferences(t *testing.T) {
	tests := []struct {
		name   string
		needle string
		better string
		worse  string
	}{
		{"starts of words", "amor", "app/models/order", "app/models/zrder"},
		{"consecutive letters", "amo", "app/models/foo", "app/m/foo"},
		{"contiguous over letter following period", "gemfil", "Gemfile", "Gemfile.lock"},
		{"shorter matches", "abce", "abcdef", "abc de"},
		{"shorter matches with spaces", "abc", "    a b c ", " a  b  c "},
		{"shorter matches trailing", "abc", " a b c    ", " a  b  c "},
		{"shorter candidates", "test", "tests", "testing"},
		{"start of candidate", "test", "testing", "/testing"},
		{"word boundary after slash", "mr", "src/main.rs", "merge.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Greater(t, Score(tt.needle, tt.better), Score(tt.needle, tt.worse))
		})
	}
}

func TestScore_Exact(t *testing.T) {
	tests := []struct {
		name     string
		needle   string
		haystack string
		want     core.Score
	}{
		{"leading gap", "a", "*a", ScoreGapLeading},
		{"two leading gaps", "a", "*ba", ScoreGapLeading * 2},
		{"leading and trailing gap", "a", "**a*", ScoreGapLeading*2 + ScoreGapTrailing},
		{"leading and two trailing gaps", "a", "**a**", ScoreGapLeading*2 + ScoreGapTrailing*2},
		{"consecutive inside gaps", "aa", "**aa**", ScoreGapLeading*2 + ScoreMatchConsecutive + ScoreGapTrailing*2},
		{"inner gap", "aa", "**a*a**", ScoreGapLeading*2 + ScoreGapInner + ScoreGapTrailing*2},
		{"consecutive", "aa", "*aa", ScoreGapLeading + ScoreMatchConsecutive},
		{"consecutive three", "aaa", "*aaa", ScoreGapLeading + ScoreMatchConsecutive*2},
		{"consecutive after gap", "abc", "*a*bc", ScoreGapLeading + ScoreGapInner + ScoreMatchConsecutive},
		{"slash", "a", "/a", ScoreGapLeading + ScoreMatchSlash},
		{"slash after gap", "a", "*/a", ScoreGapLeading*2 + ScoreMatchSlash},
		{"slash then consecutive", "aa", "a/aa", ScoreGapLeading*2 + ScoreMatchSlash + ScoreMatchConsecutive},
		{"capital", "a", "bA", ScoreGapLeading + ScoreMatchCapital},
		{"capital after gap", "a", "baA", ScoreGapLeading*2 + ScoreMatchCapital},
		{"capital then consecutive", "aa", "baAa", ScoreGapLeading*2 + ScoreMatchCapital + ScoreMatchConsecutive},
		{"dot", "a", ".a", ScoreGapLeading + ScoreMatchDot},
		{"dot later", "a", "*a.a", ScoreGapLeading*3 + ScoreMatchDot},
		{"dot after separator", "a", "-.a", ScoreGapLeading*2 + ScoreMatchDot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, float64(tt.want), float64(Score(tt.needle, tt.haystack)), scoreDelta)
			assert.InDelta(t, float64(tt.want), float64(Positions(tt.needle, tt.haystack, nil)), scoreDelta)
		})
	}
}

func TestPositions(t *testing.T) {
	tests := []struct {
		needle   string
		haystack string
		want     []int
	}{
		{"amo", "app/models/foo", []int{0, 4, 5}},
		{"amor", "app/models/order", []int{0, 4, 11, 12}},
		{"as", "tags", []int{1, 3}},
		{"as", "examples.txt", []int{2, 7}},
		{"abc", "a/a/b/c/c", []int{2, 4, 6}},
		{"foo", "foo", []int{0, 1, 2}},
		{"mr", "src/main.rs", []int{4, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.needle+"/"+tt.haystack, func(t *testing.T) {
			positions := make([]int, len(tt.needle))
			score := Positions(tt.needle, tt.haystack, positions)
			assert.Equal(t, tt.want, positions)
			assert.InDelta(t, float64(Score(tt.needle, tt.haystack)), float64(score), scoreDelta)
		})
	}

	t.Run("sentinel leaves positions untouched", func(t *testing.T) {
		positions := []int{-1, -1}
		assert.Equal(t, core.ScoreMin, Positions("ab", "a", positions))
		assert.Equal(t, []int{-1, -1}, positions)
	})
}

func TestScorer_ReuseMatchesFreshScores(t *testing.T) {
	var s Scorer
	pairs := [][2]string{
		{"amor", "app/models/order"},
		{"a", "bA"},
		{"test", "testing"},
		{"amor", "app/models/zrder"},
		{"abc", "abc"},
		{"x", strings.Repeat("y", 200) + "x"},
		{"gemfil", "Gemfile.lock"},
	}
	for _, p := range pairs {
		assert.Equal(t, Score(p[0], p[1]), s.Score(p[0], p[1]), "%q / %q", p[0], p[1])
	}
}

// randomString draws from a small alphabet with separators and mixed case so
// that matches, boundaries and consecutive runs all occur frequently.
func randomString(r *rand.Rand, n int) string {
	const alphabet = "abcABC/._- x"
	var b strings.Builder
	for range n {
		b.WriteByte(alphabet[r.IntN(len(alphabet))])
	}
	return b.String()
}

func TestScore_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	var s Scorer

	for range 2000 {
		needle := randomString(r, 1+r.IntN(4))
		haystack := randomString(r, r.IntN(24))

		score := s.Score(needle, haystack)
		if !HasMatch(needle, haystack) {
			require.Equal(t, core.ScoreMin, score, "%q / %q", needle, haystack)
			continue
		}
		if strings.EqualFold(needle, haystack) {
			require.Equal(t, core.ScoreMax, score, "%q / %q", needle, haystack)
		}

		positions := make([]int, len(needle))
		pscore := s.Positions(needle, haystack, positions)
		require.InDelta(t, float64(score), float64(pscore), scoreDelta, "%q / %q", needle, haystack)
		if score == core.ScoreMin {
			continue
		}

		for i, pos := range positions {
			require.True(t, pos >= 0 && pos < len(haystack), "%q / %q: %v", needle, haystack, positions)
			if i > 0 {
				require.Greater(t, pos, positions[i-1], "%q / %q: %v", needle, haystack, positions)
			}
			require.Equal(t, toLower(needle[i]), toLower(haystack[pos]), "%q / %q: %v", needle, haystack, positions)
		}
	}
}
