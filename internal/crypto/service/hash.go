package service

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// SHA256Hasher implements Hasher using SHA-256.
//
// The digest is a content fingerprint for deduplication and deletion
// verification. It is not a password hashing function: it is fast by design
// and carries no salt or work factor.
type SHA256Hasher struct{}

// NewHasher creates a new SHA-256 content hasher.
func NewHasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// Hash returns the lowercase hex encoding of the SHA-256 digest of data.
func (h *SHA256Hasher) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashReader digests r in a streaming fashion, without loading the content
// into memory.
func (h *SHA256Hasher) HashReader(r io.Reader) (string, error) {
	digest := sha256.New()
	if _, err := io.Copy(digest, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}
