// Package hash fingerprints build file contents.
//
// androidfix hashes each build file when it plans an edit and again right
// before writing it. A mismatch means someone else touched the file in the
// meantime, and the edit is refused rather than clobbering their change.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher computes content fingerprints.
type Hasher interface {
	// Sum returns the fingerprint of data.
	Sum(data []byte) string
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// Sum returns the hex-encoded SHA-256 of data.
func (h *SHA256Hasher) Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// StaticHasher returns the same fingerprint for every input, so tests can
// hide or force drift.
type StaticHasher struct {
	Value string
}

// Sum returns h.Value.
func (h *StaticHasher) Sum([]byte) string {
	return h.Value
}
