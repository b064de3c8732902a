// Package service provides cryptographic services for protecting regulated
// records at rest. Implements authenticated envelope encryption (PBKDF2 key
// derivation + AES-256-GCM) and content fingerprinting.
package service

import (
	"io"

	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
)

// EnvelopeCipher defines authenticated encryption of byte payloads under a
// master secret. Implementations are stateless and safe for concurrent use.
type EnvelopeCipher interface {
	// Encrypt encrypts plaintext under the master secret, deriving a fresh
	// per-call key from a random salt and sealing with a random nonce.
	Encrypt(plaintext []byte, masterSecret *cryptoDomain.MasterSecret) (*cryptoDomain.EncryptedEnvelope, error)

	// Decrypt verifies and decrypts an envelope. Fails closed with
	// ErrAuthenticationFailed when the tag does not verify and with
	// ErrInvalidEnvelope when any field is malformed.
	Decrypt(envelope *cryptoDomain.EncryptedEnvelope, masterSecret *cryptoDomain.MasterSecret) ([]byte, error)
}

// Hasher defines one-way content fingerprinting used for deduplication and
// deletion verification. Not suitable for password storage.
type Hasher interface {
	// Hash returns the lowercase hex encoding of a 256-bit digest of data.
	Hash(data []byte) string

	// HashReader digests r without buffering it in memory. Used for file
	// fingerprints where the content can be large.
	HashReader(r io.Reader) (string, error)
}
