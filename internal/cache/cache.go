package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a namespaced cache key for an analysis operation over text.
func Key(op string, text string) string {
	hash := sha256.Sum256([]byte(text))
	return "reqsift:v1:" + op + ":" + hex.EncodeToString(hash[:])
}
