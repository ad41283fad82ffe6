package hasher

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the SHA-256 hash of the input string as hex.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Fingerprint returns a short hex prefix of the hash, safe to put in logs
// where the raw token must never appear.
func Fingerprint(s string) string {
	if s == "" {
		return ""
	}
	return Hash(s)[:8]
}
