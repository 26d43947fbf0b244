package util

import (
	"crypto/sha256"
	"fmt"
)

// MaxRawKey is the longest caller key embedded verbatim in a storage key.
const MaxRawKey = 200

// DocKey returns the storage key of one persisted document. Keys longer
// than MaxRawKey are replaced by a short hash so every backend accepts them.
func DocKey(ns, key string) string {
	if len(key) <= MaxRawKey {
		return "doc:" + ns + ":" + key
	}
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("doc:%s:#%x", ns, sum[:16]) // prefix + "#" + first 32 hex chars
}
