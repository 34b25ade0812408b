package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores rendered flatten results keyed by input content
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the raw input document and a fingerprint of
// the options it is flattened with. The same bytes flattened differently
// get different keys.
func Key(content []byte, fingerprint string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	return "censusflat:v1:" + hex.EncodeToString(h.Sum(nil))
}
