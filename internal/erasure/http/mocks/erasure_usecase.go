// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
	"github.com/allisson/phiguard/internal/gate"
)

// MockErasureUseCase is a mock implementation of ErasureUseCase for testing.
type MockErasureUseCase struct {
	mock.Mock
}

// Erase mocks the Erase method of ErasureUseCase.
func (m *MockErasureUseCase) Erase(
	ctx context.Context,
	actor gate.Actor,
	input *erasureDomain.EraseInput,
) (*erasureDomain.DeletionRecord, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*erasureDomain.DeletionRecord), args.Error(1)
}

// List mocks the List method of ErasureUseCase.
func (m *MockErasureUseCase) List(
	ctx context.Context,
	organizationID string,
	offset, limit int,
) ([]*erasureDomain.DeletionRecord, error) {
	args := m.Called(ctx, organizationID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*erasureDomain.DeletionRecord), args.Error(1)
}
