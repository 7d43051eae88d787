package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/verity/core"
)

// Key prefixes for different data types. The prefixes do not overlap, so
// iterators over one keyspace never see keys from another.
const (
	answerRecordPrefix = "ansrec"
	answerIntentPrefix = "ansint"
	answerViewsPrefix  = "ansvws"
)

// makeAnswerKey generates a key for a verified answer by ID.
func makeAnswerKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", answerRecordPrefix, id))
}

// makeAnswerViewsKey generates a key for an answer's view counter.
// Views live under their own key so view increments never share a write set
// with verification updates.
func makeAnswerViewsKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", answerViewsPrefix, id))
}

// makeAnswerIntentKey generates a composite key for the intent index.
// Format: prefix:intent:id
func makeAnswerIntentKey(intent core.Intent, id core.ID) []byte {
	prefix := answerIntentPrefix + ":" + string(intent) + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialAnswerIntentKey generates a partial key for intent queries.
// Format: prefix:intent:
func makePartialAnswerIntentKey(intent core.Intent) []byte {
	return []byte(answerIntentPrefix + ":" + string(intent) + ":")
}
