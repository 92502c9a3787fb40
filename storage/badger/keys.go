package badger

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/librit/core"
)

// Key prefixes for different data types
const (
	chunkRecordPrefix      = "chkrec"
	chunkFilePrefix        = "chkfile"
	runRecordPrefix        = "ingrun"
	runRecordDatePrefix    = "ingrund"
	runRecordDatasetPrefix = "ingrunds"
	runRecordIDSeq         = "ingrunseq"
)

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

// makeChunkFileKey generates a composite key for the file index.
// Format: prefix:fileID:ordinal
func makeChunkFileKey(fileID core.ID, ordinal int) []byte {
	prefix := chunkFilePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for fileID + 8 bytes for ordinal
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(fileID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(ordinal))
	return buf
}

// makePartialChunkFileKey generates a partial key for per-file queries.
// Format: prefix:fileID
func makePartialChunkFileKey(fileID core.ID) []byte {
	prefix := chunkFilePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for fileID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(fileID))
	return buf
}

// makeRunKey generates a key for an ingestion record by ID.
func makeRunKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", runRecordPrefix, id))
}

// makeRunDateKey generates a composite key for the run date index.
// Format: prefix:startedAt:id
func makeRunDateKey(startedAt time.Time, id core.ID) []byte {
	prefix := runRecordDatePrefix + ":"
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

// makePartialRunDateKey generates a partial key for run date range queries.
// Format: prefix:startedAt
func makePartialRunDateKey(startedAt time.Time) []byte {
	prefix := runRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(startedAt.UnixMicro()))
	return buf
}

// makeRunDatasetKey generates a composite key for the per-dataset run index.
// Format: prefix:datasetID:startedAt:runID
func makeRunDatasetKey(datasetID core.ID, startedAt time.Time, runID core.ID) []byte {
	prefix := runRecordDatasetPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 24 // 8 bytes each for datasetID, timestamp, and runID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(datasetID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(startedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(runID))
	return buf
}

// makeRunDatasetPrefix generates the index prefix covering one dataset's runs.
// Format: prefix:datasetID
func makeRunDatasetPrefix(datasetID core.ID) []byte {
	prefix := runRecordDatasetPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for datasetID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(datasetID))
	return buf
}

// makePartialRunDatasetKey generates a partial key for per-dataset run queries.
// Format: prefix:datasetID:startedAt
func makePartialRunDatasetKey(datasetID core.ID, startedAt time.Time) []byte {
	prefix := runRecordDatasetPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for datasetID + 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(datasetID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(startedAt.UnixMicro()))
	return buf
}

// makeDatasetID derives the stable identifier used by the per-dataset run
// index from the fully qualified dataset name.
func makeDatasetID(namespace, project, dataset string) core.ID {
	return core.IDFromContent(strings.Join([]string{namespace, project, dataset}, "/"))
}
