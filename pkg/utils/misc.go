package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// GetHostname returns the machine hostname, or "unknown" if it cannot be
// determined. Used as the default device name in config.
func GetHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}

// HashContent returns the hex-encoded SHA-256 of data. Capture journal
// entries are keyed and deduplicated by this hash.
func HashContent(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Preview truncates s to at most n runes for log output, appending an
// ellipsis when truncated. Newlines are preserved; callers that need a
// single-line preview should log with %q.
func Preview(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
