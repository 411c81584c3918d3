package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// NoExpiration marks an entry that never expires. The per-claim verification
// cache uses this: claim text to verification outcome is treated as stable.
const NoExpiration time.Duration = -1

// Cache is the byte-value cache shared by the fact checker and the pipeline.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from arbitrary text by content hash, so
// identical claims across requests land on the same entry.
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "credence:v1:" + hex.EncodeToString(sum[:])
}
