package badger

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/sift/core"
)

// Key prefixes for different data types
const (
	historyEntryPrefix   = "hisent"
	historyRecencyPrefix = "hisrec"
)

// makeHistoryEntryKey generates a key for a history entry by ID.
func makeHistoryEntryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", historyEntryPrefix, id))
}

// makeHistoryRecencyKey generates a composite key for the recency index.
// Format: prefix:lastUsed:id
func makeHistoryRecencyKey(lastUsed time.Time, id core.ID) []byte {
	prefix := historyRecencyPrefix + ":"
	buf := make([]byte, len(prefix)+16) // 8 bytes for timestamp + 8 bytes for ID
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(lastUsed.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// historyRecencyIndexPrefix is the prefix shared by every recency index key.
func historyRecencyIndexPrefix() []byte {
	return []byte(historyRecencyPrefix + ":")
}

// historyRecencySeekKey sorts after every recency index key, for reverse
// iteration from the most recent entry.
func historyRecencySeekKey() []byte {
	return append(historyRecencyIndexPrefix(), bytes.Repeat([]byte{0xff}, 17)...)
}
