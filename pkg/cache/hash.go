package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components, in the
// format prefix:hash(parts...). The Keyer builds both entry families
// with it: "dataset" keys hash the source data section, "artifact"
// keys hash the dataset hash plus every render option that changes
// the output bytes.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data, returned as the full
// 64-character hex string. The pipeline uses it to content-address
// normalized datasets before keying rendered artifacts.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
