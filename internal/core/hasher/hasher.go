package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
)

// CalculateSHA256 computes the SHA256 hash of the given content
// and returns it in the format "sha256:<hex_hash>".
func CalculateSHA256(content []byte) (string, error) {
	h := NewSHA256()
	if _, err := h.Write(content); err != nil {
		return "", fmt.Errorf("failed to write content to hasher: %w", err)
	}
	return h.Sum(), nil
}

// SHA256 accumulates written bytes, for use alongside io.MultiWriter while streaming.
type SHA256 struct {
	h hash.Hash
}

// NewSHA256 returns an empty SHA256 accumulator.
func NewSHA256() *SHA256 {
	return &SHA256{h: sha256.New()}
}

func (s *SHA256) Write(p []byte) (int, error) {
	return s.h.Write(p)
}

// Sum returns the digest of everything written so far as "sha256:<hex_hash>".
func (s *SHA256) Sum() string {
	return "sha256:" + hex.EncodeToString(s.h.Sum(nil))
}
