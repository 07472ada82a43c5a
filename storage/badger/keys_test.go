package badger

import (
	"bytes"
	"testing"
	"time"

	"github.com/poiesic/sift/core"
	"github.com/stretchr/testify/assert"
)

func TestHistoryRecencyKeyOrdering(t *testing.T) {
	earlier := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Microsecond)

	a := makeHistoryRecencyKey(earlier, core.ID(^uint64(0)))
	b := makeHistoryRecencyKey(later, core.ID(0))
	assert.Negative(t, bytes.Compare(a, b), "recency keys must sort by time first")

	c := makeHistoryRecencyKey(later, core.ID(1))
	assert.Negative(t, bytes.Compare(b, c), "equal times sort by ID")

	prefix := historyRecencyIndexPrefix()
	seek := historyRecencySeekKey()
	for _, key := range [][]byte{a, b, c} {
		assert.True(t, bytes.HasPrefix(key, prefix))
		assert.Positive(t, bytes.Compare(seek, key))
	}
}

func TestHistoryEntryKeyDoesNotCollideWithIndex(t *testing.T) {
	key := makeHistoryEntryKey(core.ID(12345))
	assert.Equal(t, "hisent:12345", string(key))
	assert.False(t, bytes.HasPrefix(key, historyRecencyIndexPrefix()))
}
