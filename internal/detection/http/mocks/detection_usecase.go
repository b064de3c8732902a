// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	detectionDomain "github.com/allisson/phiguard/internal/detection/domain"
	"github.com/allisson/phiguard/internal/gate"
)

// MockDetectionUseCase is a mock implementation of DetectionUseCase for testing.
type MockDetectionUseCase struct {
	mock.Mock
}

// Scan mocks the Scan method of DetectionUseCase.
func (m *MockDetectionUseCase) Scan(
	ctx context.Context,
	actor gate.Actor,
	text string,
) (detectionDomain.DetectionVerdict, error) {
	args := m.Called(ctx, actor, text)
	return args.Get(0).(detectionDomain.DetectionVerdict), args.Error(1)
}

// Redact mocks the Redact method of DetectionUseCase.
func (m *MockDetectionUseCase) Redact(text string) string {
	args := m.Called(text)
	return args.String(0)
}
