// Package checksum provides content digests used for deduplication and change detection.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Fingerprint identifies a contact submission by its normalised fields.
// Email case and surrounding whitespace do not change the result.
func Fingerprint(name, email, message string) string {
	h := sha256.New()
	for _, part := range []string{
		strings.TrimSpace(name),
		strings.ToLower(strings.TrimSpace(email)),
		strings.TrimSpace(message),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
