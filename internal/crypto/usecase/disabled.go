package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
	cryptoService "github.com/allisson/phiguard/internal/crypto/service"
)

// disabledCryptoUseCase is installed when the engine boots without a master
// secret. The rest of the API stays up so the compliance module can report
// the missing secret; encryption itself fails closed. Hashing stays available
// because it never touches key material.
type disabledCryptoUseCase struct {
	hasher cryptoService.Hasher
}

// NewDisabledCryptoUseCase creates a CryptoUseCase that rejects every keyed
// call with ErrMasterSecretNotSet.
func NewDisabledCryptoUseCase(hasher cryptoService.Hasher) CryptoUseCase {
	return &disabledCryptoUseCase{hasher: hasher}
}

func (d *disabledCryptoUseCase) Encrypt(_ context.Context, _ []byte) (*cryptoDomain.EncryptedEnvelope, error) {
	return nil, cryptoDomain.ErrMasterSecretNotSet
}

func (d *disabledCryptoUseCase) Decrypt(_ context.Context, _ *cryptoDomain.EncryptedEnvelope) ([]byte, error) {
	return nil, cryptoDomain.ErrMasterSecretNotSet
}

func (d *disabledCryptoUseCase) Hash(_ context.Context, data []byte) string {
	return d.hasher.Hash(data)
}
