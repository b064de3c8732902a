package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
)

// MinMasterSecretSize is the minimum master secret length in bytes. The
// per-call KDF stretches the secret, but a short secret still weakens the
// whole envelope hierarchy.
const MinMasterSecretSize = 32

// KMSKeeper abstracts a gocloud.dev secrets keeper used to unwrap a
// KMS-wrapped master secret. *secrets.Keeper implements this interface.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// MasterSecret is the root secret from which all per-envelope keys are
// derived. It is loaded once at process start and treated as immutable for
// the process lifetime.
//
// Security considerations:
//   - The secret should be at least 32 bytes of cryptographically random data
//   - In production the secret should come KMS-wrapped, not in the clear
//   - Call Close during shutdown to clear the secret from memory
type MasterSecret struct {
	bytes []byte
}

// NewMasterSecret wraps raw secret material. Returns ErrMasterSecretTooShort
// when fewer than MinMasterSecretSize bytes are provided.
func NewMasterSecret(b []byte) (*MasterSecret, error) {
	if len(b) == 0 {
		return nil, ErrMasterSecretNotSet
	}
	if len(b) < MinMasterSecretSize {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d",
			ErrMasterSecretTooShort, MinMasterSecretSize, len(b))
	}
	secret := make([]byte, len(b))
	copy(secret, b)
	return &MasterSecret{bytes: secret}, nil
}

// Bytes returns the raw secret material. Callers must never persist or log
// the returned slice.
func (m *MasterSecret) Bytes() []byte {
	return m.bytes
}

// Close clears the secret from memory. The MasterSecret is unusable afterwards.
func (m *MasterSecret) Close() {
	Zero(m.bytes)
	m.bytes = nil
}

// LoadMasterSecretFromEnv loads the master secret from environment variables.
//
// Two sources are supported, checked in order:
//
//	MASTER_SECRET          base64-encoded secret in the clear (development)
//	MASTER_SECRET_WRAPPED  base64-encoded, KMS-wrapped secret; requires a
//	                       keeper opened from KMS_KEY_URI to unwrap
//
// Temporary decoded bytes are zeroed after being copied into the returned
// MasterSecret. Returns ErrMasterSecretNotSet when neither variable is set.
func LoadMasterSecretFromEnv(ctx context.Context, keeper KMSKeeper) (*MasterSecret, error) {
	if raw := os.Getenv("MASTER_SECRET"); raw != "" {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMasterSecretBase64, err)
		}
		defer Zero(decoded)
		return NewMasterSecret(decoded)
	}

	if wrapped := os.Getenv("MASTER_SECRET_WRAPPED"); wrapped != "" {
		if keeper == nil {
			return nil, fmt.Errorf("%w: MASTER_SECRET_WRAPPED requires KMS_KEY_URI", ErrMasterSecretNotSet)
		}
		ciphertext, err := base64.StdEncoding.DecodeString(wrapped)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMasterSecretBase64, err)
		}
		decoded, err := keeper.Decrypt(ctx, ciphertext)
		if err != nil {
			return nil, fmt.Errorf("failed to unwrap master secret: %w", err)
		}
		defer Zero(decoded)
		return NewMasterSecret(decoded)
	}

	return nil, ErrMasterSecretNotSet
}
