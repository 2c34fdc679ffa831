package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/filescout/core"
)

// Key prefixes for different data types
const (
	runRecordPrefix    = "scnrun"
	runStartedPrefix   = "scnrund"
	runIDSeq           = "scnrunseq"
	matchRecordPrefix  = "scnmat"
	exceptionRowPrefix = "scnexc"
	rowIDSeq           = "scnrowseq"
)

// makeRunKey generates a key for a run by ID.
func makeRunKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", runRecordPrefix, id))
}

// makeRunStartedKey generates a composite key for the started-at index.
// Format: prefix:timestamp:id
func makeRunStartedKey(startedAt time.Time, id core.ID) []byte {
	prefix := runStartedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(startedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialRunStartedKey generates a partial key for listing runs by date.
// Format: prefix:timestamp
func makePartialRunStartedKey(startedAt time.Time) []byte {
	prefix := runStartedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(startedAt.UnixMicro()))
	return buf
}

// makeRowKey generates a composite key for a match or exception row.
// Format: prefix:runID:rowID
func makeRowKey(prefix string, runID, rowID core.ID) []byte {
	prefixBytes := []byte(prefix + ":")
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for runID + 8 bytes for rowID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(runID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(rowID))
	return buf
}

// makePartialRowKey generates a partial key for iterating a run's rows.
// Format: prefix:runID
func makePartialRowKey(prefix string, runID core.ID) []byte {
	prefixBytes := []byte(prefix + ":")
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for runID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(runID))
	return buf
}
