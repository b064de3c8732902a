package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
)

// KeyIterations is the PBKDF2-SHA256 iteration count used to derive the
// per-envelope key from the master secret. Deliberately slow so that
// brute-forcing the master secret from a stolen envelope is expensive.
const KeyIterations = 210_000

// AESGCMEnvelopeCipher implements EnvelopeCipher using PBKDF2-SHA256 key
// derivation and AES-256-GCM authenticated encryption.
//
// Each Encrypt call generates a fresh 64-byte random salt and a fresh
// 16-byte random nonce. The salt feeds key derivation, so two encryptions of
// the same plaintext under the same master secret never share a key, and the
// nonce is never reused under any derived key.
//
// Security properties:
//   - 256-bit derived key (AES-256)
//   - 16-byte nonce, randomly generated per encryption
//   - 16-byte authentication tag, stored separately in the envelope
//   - authentication is verified before any plaintext is released
//
// Thread safety:
//
//	The cipher is stateless and safe for concurrent use from multiple
//	goroutines. Each operation derives its own key material independently.
type AESGCMEnvelopeCipher struct{}

// NewEnvelopeCipher creates a new AES-256-GCM envelope cipher.
func NewEnvelopeCipher() *AESGCMEnvelopeCipher {
	return &AESGCMEnvelopeCipher{}
}

// Encrypt encrypts plaintext under the master secret.
//
// A 256-bit key is derived from the master secret and a fresh random salt via
// PBKDF2-SHA256 with KeyIterations iterations. The plaintext is then sealed
// with AES-256-GCM under a fresh random nonce. The GCM output is split into
// ciphertext and authentication tag so the envelope carries each field
// explicitly.
//
// The derived key is zeroed before returning. Returns an error if random
// generation or cipher construction fails; encryption itself cannot fail
// once the AEAD is constructed.
func (c *AESGCMEnvelopeCipher) Encrypt(
	plaintext []byte,
	masterSecret *cryptoDomain.MasterSecret,
) (*cryptoDomain.EncryptedEnvelope, error) {
	if masterSecret == nil || len(masterSecret.Bytes()) == 0 {
		return nil, cryptoDomain.ErrMasterSecretNotSet
	}

	salt := make([]byte, cryptoDomain.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, cryptoDomain.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aead, key, err := c.buildAEAD(masterSecret, salt)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	sealed := aead.Seal(nil, nonce, plaintext, nil)

	// GCM appends the tag to the ciphertext; the envelope stores them apart.
	tagStart := len(sealed) - cryptoDomain.AuthTagSize
	envelope := &cryptoDomain.EncryptedEnvelope{
		Ciphertext: sealed[:tagStart:tagStart],
		Nonce:      nonce,
		Salt:       salt,
		AuthTag:    sealed[tagStart:],
	}

	return envelope, nil
}

// Decrypt verifies and decrypts an envelope under the master secret.
//
// The envelope is validated structurally first (ErrInvalidEnvelope), then the
// per-envelope key is re-derived from the stored salt and the sealed payload
// is opened. Any authentication failure (wrong secret, flipped ciphertext or
// tag bit, mismatched nonce) returns ErrAuthenticationFailed and no
// plaintext, partial or otherwise, is ever returned.
func (c *AESGCMEnvelopeCipher) Decrypt(
	envelope *cryptoDomain.EncryptedEnvelope,
	masterSecret *cryptoDomain.MasterSecret,
) ([]byte, error) {
	if masterSecret == nil || len(masterSecret.Bytes()) == 0 {
		return nil, cryptoDomain.ErrMasterSecretNotSet
	}
	if err := envelope.Validate(); err != nil {
		return nil, err
	}

	aead, key, err := c.buildAEAD(masterSecret, envelope.Salt)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	sealed := make([]byte, 0, len(envelope.Ciphertext)+len(envelope.AuthTag))
	sealed = append(sealed, envelope.Ciphertext...)
	sealed = append(sealed, envelope.AuthTag...)

	plaintext, err := aead.Open(nil, envelope.Nonce, sealed, nil)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}

	return plaintext, nil
}

// buildAEAD derives the per-envelope key and constructs the GCM instance with
// the envelope's explicit nonce size. The returned key must be zeroed by the
// caller once the AEAD is no longer needed.
func (c *AESGCMEnvelopeCipher) buildAEAD(
	masterSecret *cryptoDomain.MasterSecret,
	salt []byte,
) (cipher.AEAD, []byte, error) {
	key := pbkdf2.Key(masterSecret.Bytes(), salt, KeyIterations, cryptoDomain.KeySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		cryptoDomain.Zero(key)
		return nil, nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.NonceSize)
	if err != nil {
		cryptoDomain.Zero(key)
		return nil, nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return aead, key, nil
}
