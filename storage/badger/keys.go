package badger

import (
	"encoding/binary"

	"github.com/quaesit/quaesit/core"
)

// Key prefixes for different data types
const (
	profileRecordPrefix = "prorec"
)

// makeProfileKey generates a key for a profile by ID.
// The ID is written in BigEndian order so lexicographic iteration visits
// profiles in ascending ID order.
func makeProfileKey(id core.ID) []byte {
	prefix := profileRecordPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// profileKeyPrefix returns the iteration prefix covering all profile records.
func profileKeyPrefix() []byte {
	return []byte(profileRecordPrefix + ":")
}
