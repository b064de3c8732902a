// Package domain defines the core domain models for envelope encryption of
// regulated data. Every encryption call produces a self-contained envelope
// carrying the random salt and nonce used for that call, so the only long-term
// secret is the master secret itself.
package domain

// Envelope field size requirements. Salt and nonce are generated fresh per
// encryption call; reusing either under the same master secret is never valid.
const (
	// SaltSize is the number of random salt bytes used for key derivation.
	SaltSize = 64
	// NonceSize is the number of random nonce bytes used by the AEAD cipher.
	NonceSize = 16
	// AuthTagSize is the size of the GCM authentication tag.
	AuthTagSize = 16
	// KeySize is the derived symmetric key size (AES-256).
	KeySize = 32
)

// EncryptedEnvelope holds the output of a single authenticated encryption call.
//
// The envelope is immutable once created and owned by whatever record stores
// it. Decryption fails closed: if AuthTag does not verify against Ciphertext,
// no plaintext is ever returned.
type EncryptedEnvelope struct {
	// Ciphertext is the encrypted payload without the authentication tag.
	Ciphertext []byte
	// Nonce is the random value supplied to the AEAD cipher for this call.
	Nonce []byte
	// Salt is the random value mixed into key derivation for this call.
	Salt []byte
	// AuthTag is the AEAD authentication tag verified before any plaintext
	// is released.
	AuthTag []byte
}

// Validate checks the structural shape of the envelope before any
// cryptographic work is attempted. Returns ErrInvalidEnvelope when a field
// is missing or has the wrong length.
func (e *EncryptedEnvelope) Validate() error {
	if e == nil {
		return ErrInvalidEnvelope
	}
	if len(e.Salt) != SaltSize {
		return ErrInvalidEnvelope
	}
	if len(e.Nonce) != NonceSize {
		return ErrInvalidEnvelope
	}
	if len(e.AuthTag) != AuthTagSize {
		return ErrInvalidEnvelope
	}
	// Empty plaintext is legal, so an empty ciphertext is too. A nil slice
	// means the envelope was never populated.
	if e.Ciphertext == nil {
		return ErrInvalidEnvelope
	}
	return nil
}
