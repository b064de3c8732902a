// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
)

// MockCryptoUseCase is a mock implementation of usecase.CryptoUseCase.
type MockCryptoUseCase struct {
	mock.Mock
}

func (m *MockCryptoUseCase) Encrypt(ctx context.Context, plaintext []byte) (*cryptoDomain.EncryptedEnvelope, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.EncryptedEnvelope), args.Error(1)
}

func (m *MockCryptoUseCase) Decrypt(ctx context.Context, envelope *cryptoDomain.EncryptedEnvelope) ([]byte, error) {
	args := m.Called(ctx, envelope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCryptoUseCase) Hash(ctx context.Context, data []byte) string {
	args := m.Called(ctx, data)
	return args.String(0)
}
