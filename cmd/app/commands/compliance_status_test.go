package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	complianceDomain "github.com/allisson/phiguard/internal/compliance/domain"
	"github.com/allisson/phiguard/internal/compliance/http/mocks"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

func TestRunComplianceStatus(t *testing.T) {
	t.Run("compliant organization", func(t *testing.T) {
		mockUseCase := new(mocks.MockComplianceUseCase)
		mockUseCase.On("Status", mock.Anything, "org-1").Return(&complianceDomain.ComplianceStatus{
			OrganizationID: "org-1",
			IsCompliant:    true,
			CheckedAt:      time.Now().UTC(),
		}, nil)

		var out bytes.Buffer
		err := RunComplianceStatus(context.Background(), mockUseCase, &out, "org-1", "text")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Organization org-1 is COMPLIANT")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("non-compliant organization lists findings", func(t *testing.T) {
		mockUseCase := new(mocks.MockComplianceUseCase)
		mockUseCase.On("Status", mock.Anything, "org-1").Return(&complianceDomain.ComplianceStatus{
			OrganizationID:  "org-1",
			IsCompliant:     false,
			Findings:        []string{"master secret is not configured"},
			Recommendations: []string{"set MASTER_SECRET or MASTER_SECRET_WRAPPED"},
			CheckedAt:       time.Now().UTC(),
		}, nil)

		var out bytes.Buffer
		err := RunComplianceStatus(context.Background(), mockUseCase, &out, "org-1", "text")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "NOT COMPLIANT")
		assert.Contains(t, out.String(), "master secret is not configured")
		assert.Contains(t, out.String(), "set MASTER_SECRET or MASTER_SECRET_WRAPPED")
	})

	t.Run("json output", func(t *testing.T) {
		mockUseCase := new(mocks.MockComplianceUseCase)
		mockUseCase.On("Status", mock.Anything, "org-1").Return(&complianceDomain.ComplianceStatus{
			OrganizationID: "org-1",
			IsCompliant:    false,
			Findings:       []string{"audit retention below the regulatory floor"},
			CheckedAt:      time.Now().UTC(),
		}, nil)

		var out bytes.Buffer
		err := RunComplianceStatus(context.Background(), mockUseCase, &out, "org-1", "json")
		require.NoError(t, err)

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, "org-1", result["organization_id"])
		assert.Equal(t, false, result["is_compliant"])
	})

	t.Run("use case failure", func(t *testing.T) {
		mockUseCase := new(mocks.MockComplianceUseCase)
		mockUseCase.On("Status", mock.Anything, "org-1").
			Return(nil, apperrors.Wrap(apperrors.ErrPersistence, "database unavailable"))

		var out bytes.Buffer
		err := RunComplianceStatus(context.Background(), mockUseCase, &out, "org-1", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to compute compliance status")
	})

	t.Run("missing organization id", func(t *testing.T) {
		mockUseCase := new(mocks.MockComplianceUseCase)

		var out bytes.Buffer
		err := RunComplianceStatus(context.Background(), mockUseCase, &out, "", "text")
		require.Error(t, err)
		mockUseCase.AssertNotCalled(t, "Status")
	})
}
