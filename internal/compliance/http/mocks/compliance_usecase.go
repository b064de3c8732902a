// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	complianceDomain "github.com/allisson/phiguard/internal/compliance/domain"
)

// MockComplianceUseCase is a mock implementation of ComplianceUseCase for testing.
type MockComplianceUseCase struct {
	mock.Mock
}

// Status mocks the Status method of ComplianceUseCase.
func (m *MockComplianceUseCase) Status(
	ctx context.Context,
	organizationID string,
) (*complianceDomain.ComplianceStatus, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complianceDomain.ComplianceStatus), args.Error(1)
}

// UpsertSetting mocks the UpsertSetting method of ComplianceUseCase.
func (m *MockComplianceUseCase) UpsertSetting(
	ctx context.Context,
	input *complianceDomain.ComplianceSettingInput,
) (*complianceDomain.ComplianceSetting, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complianceDomain.ComplianceSetting), args.Error(1)
}

// ListSettings mocks the ListSettings method of ComplianceUseCase.
func (m *MockComplianceUseCase) ListSettings(
	ctx context.Context,
	organizationID string,
) ([]*complianceDomain.ComplianceSetting, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*complianceDomain.ComplianceSetting), args.Error(1)
}
