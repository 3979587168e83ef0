package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey derives a cache key from a prefix and a list of parts, e.g. the
// instance URL plus a project reference or a set of listing filters. Each
// part is JSON-encoded into the digest with a separator so that adjacent
// parts cannot run together ("a","bc" and "ab","c" hash differently).
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	for _, part := range parts {
		raw, _ := json.Marshal(part)
		h.Write(raw)
		h.Write([]byte{0})
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the full hex-encoded SHA-256 digest of data, 64 characters.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
