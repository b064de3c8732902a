package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
	cryptoService "github.com/allisson/phiguard/internal/crypto/service"
)

// cryptoUseCase implements CryptoUseCase. It binds the stateless envelope
// cipher to the engine's master secret loaded at boot.
type cryptoUseCase struct {
	cipher       cryptoService.EnvelopeCipher
	hasher       cryptoService.Hasher
	masterSecret *cryptoDomain.MasterSecret
}

// NewCryptoUseCase creates a new CryptoUseCase with the provided dependencies.
func NewCryptoUseCase(
	cipher cryptoService.EnvelopeCipher,
	hasher cryptoService.Hasher,
	masterSecret *cryptoDomain.MasterSecret,
) (CryptoUseCase, error) {
	if masterSecret == nil {
		return nil, cryptoDomain.ErrMasterSecretNotSet
	}
	return &cryptoUseCase{
		cipher:       cipher,
		hasher:       hasher,
		masterSecret: masterSecret,
	}, nil
}

// Encrypt seals plaintext into an authenticated envelope.
func (c *cryptoUseCase) Encrypt(
	_ context.Context,
	plaintext []byte,
) (*cryptoDomain.EncryptedEnvelope, error) {
	return c.cipher.Encrypt(plaintext, c.masterSecret)
}

// Decrypt verifies and opens an envelope.
func (c *cryptoUseCase) Decrypt(
	_ context.Context,
	envelope *cryptoDomain.EncryptedEnvelope,
) ([]byte, error) {
	return c.cipher.Decrypt(envelope, c.masterSecret)
}

// Hash fingerprints content. No key material is involved.
func (c *cryptoUseCase) Hash(_ context.Context, data []byte) string {
	return c.hasher.Hash(data)
}
