package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText returns a stable hex digest of s, used as a dedupe key and as a
// log-safe stand-in for CV text.
func HashText(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
