// Package usecase implements business logic orchestration for envelope
// encryption operations.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
)

// CryptoUseCase exposes envelope encryption under the engine's master secret.
type CryptoUseCase interface {
	// Encrypt seals plaintext into an authenticated envelope with a fresh
	// per-call key.
	Encrypt(ctx context.Context, plaintext []byte) (*cryptoDomain.EncryptedEnvelope, error)

	// Decrypt verifies and opens an envelope. Fails closed on any
	// authentication failure.
	Decrypt(ctx context.Context, envelope *cryptoDomain.EncryptedEnvelope) ([]byte, error)

	// Hash returns the hex-encoded 256-bit content fingerprint of data.
	// Keyless: available even when no master secret is configured.
	Hash(ctx context.Context, data []byte) string
}
