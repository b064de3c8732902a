package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/phiguard/internal/audit/http/mocks"
	auditUseCase "github.com/allisson/phiguard/internal/audit/usecase"
)

func TestRunVerifyAuditEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("clean trail passes", func(t *testing.T) {
		mockUseCase := new(mocks.MockAuditUseCase)
		mockUseCase.On("VerifyRange", mock.Anything, mock.Anything, mock.Anything).
			Return(&auditUseCase.VerificationReport{
				TotalChecked: 10,
				SignedCount:  10,
				ValidCount:   10,
			}, nil)

		var out bytes.Buffer
		err := RunVerifyAuditEvents(context.Background(), mockUseCase, logger, &out, "", "", "text")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Status: PASSED")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("tampered trail fails the command", func(t *testing.T) {
		mockUseCase := new(mocks.MockAuditUseCase)
		mockUseCase.On("VerifyRange", mock.Anything, mock.Anything, mock.Anything).
			Return(&auditUseCase.VerificationReport{
				TotalChecked: 2,
				SignedCount:  2,
				ValidCount:   1,
				InvalidCount: 1,
				InvalidEvents: []auditUseCase.InvalidEvent{
					{EventID: "019028fa-0001-7000-8000-000000000001", OrganizationID: "org-1"},
				},
			}, nil)

		var out bytes.Buffer
		err := RunVerifyAuditEvents(context.Background(), mockUseCase, logger, &out, "", "", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 invalid signature")
		assert.Contains(t, out.String(), "Status: FAILED")
		assert.Contains(t, out.String(), "019028fa-0001-7000-8000-000000000001")
	})

	t.Run("json output", func(t *testing.T) {
		mockUseCase := new(mocks.MockAuditUseCase)
		mockUseCase.On("VerifyRange", mock.Anything, mock.Anything, mock.Anything).
			Return(&auditUseCase.VerificationReport{
				TotalChecked:  3,
				SignedCount:   2,
				UnsignedCount: 1,
				ValidCount:    2,
			}, nil)

		var out bytes.Buffer
		err := RunVerifyAuditEvents(context.Background(), mockUseCase, logger, &out, "", "", "json")
		require.NoError(t, err)

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, float64(3), result["total_checked"])
		assert.Equal(t, float64(1), result["unsigned_count"])
		assert.Equal(t, true, result["passed"])
	})

	t.Run("date range is forwarded", func(t *testing.T) {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		mockUseCase := new(mocks.MockAuditUseCase)
		mockUseCase.On("VerifyRange", mock.Anything, &start, &end).
			Return(&auditUseCase.VerificationReport{}, nil)

		var out bytes.Buffer
		err := RunVerifyAuditEvents(
			context.Background(), mockUseCase, logger, &out,
			"2026-01-01", "2026-02-01", "text",
		)
		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		mockUseCase := new(mocks.MockAuditUseCase)

		var out bytes.Buffer
		err := RunVerifyAuditEvents(
			context.Background(), mockUseCase, logger, &out,
			"2026-02-01", "2026-01-01", "text",
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "end date must be after start date")
		mockUseCase.AssertNotCalled(t, "VerifyRange", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		mockUseCase := new(mocks.MockAuditUseCase)

		var out bytes.Buffer
		err := RunVerifyAuditEvents(
			context.Background(), mockUseCase, logger, &out,
			"January 1st", "", "text",
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid start date")
	})
}
