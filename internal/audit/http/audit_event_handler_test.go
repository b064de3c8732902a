package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
	"github.com/allisson/phiguard/internal/audit/http/dto"
	"github.com/allisson/phiguard/internal/audit/http/mocks"
	"github.com/allisson/phiguard/internal/gate"
)

// setupTestAuditEventHandler creates a test handler with mocked dependencies.
func setupTestAuditEventHandler(t *testing.T) (*AuditEventHandler, *mocks.MockAuditUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockAuditUseCase := &mocks.MockAuditUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewAuditEventHandler(mockAuditUseCase, logger)

	return handler, mockAuditUseCase
}

func testActor() gate.Actor {
	return gate.Actor{
		ID:             "user-1",
		OrganizationID: "org-1",
		SessionID:      "sess-1",
	}
}

func TestAuditEventHandler_ListHandler(t *testing.T) {
	t.Run("Success_DefaultPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestAuditEventHandler(t)

		now := time.Now().UTC()
		expectedEvents := []*auditDomain.AuditEvent{
			{
				ID:             uuid.Must(uuid.NewV7()),
				ActorID:        "user-1",
				OrganizationID: "org-1",
				Action:         "phi.access",
				Resource:       "/records/42",
				EventKind:      auditDomain.EventAccess,
				Severity:       auditDomain.SeverityMedium,
				Encrypted:      true,
				CreatedAt:      now,
			},
			{
				ID:             uuid.Must(uuid.NewV7()),
				ActorID:        "user-2",
				OrganizationID: "org-1",
				Action:         "phi.erase",
				Resource:       "/exports/7",
				EventKind:      auditDomain.EventDelete,
				Severity:       auditDomain.SeverityHigh,
				Encrypted:      true,
				CreatedAt:      now.Add(-1 * time.Hour),
			},
		}

		mockUseCase.On("List", mock.Anything, "org-1", 0, 50, (*time.Time)(nil), (*time.Time)(nil)).
			Return(expectedEvents, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/audit-events", nil)
		withTestActor(c, testActor())

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListAuditEventsResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response.Data, 2)
		assert.Equal(t, expectedEvents[0].ID.String(), response.Data[0].ID)
		assert.Equal(t, "phi.access", response.Data[0].Action)
		assert.Equal(t, string(auditDomain.EventAccess), response.Data[0].EventKind)
		assert.True(t, response.Data[0].Encrypted)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_CustomPaginationAndTimeFilters", func(t *testing.T) {
		handler, mockUseCase := setupTestAuditEventHandler(t)

		from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 14, 23, 59, 59, 0, time.UTC)

		mockUseCase.On("List", mock.Anything, "org-1", 10, 25, &from, &to).
			Return([]*auditDomain.AuditEvent{}, nil).
			Once()

		c, w := createTestContext(http.MethodGet,
			"/v1/audit-events?offset=10&limit=25"+
				"&created_at_from=2026-02-01T00:00:00Z&created_at_to=2026-02-14T23:59:59Z", nil)
		withTestActor(c, testActor())

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingActor", func(t *testing.T) {
		handler, mockUseCase := setupTestAuditEventHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/audit-events", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUseCase.AssertNotCalled(t, "List")
	})

	t.Run("Error_InvalidTimeFilter", func(t *testing.T) {
		handler, mockUseCase := setupTestAuditEventHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/audit-events?created_at_from=not-a-date", nil)
		withTestActor(c, testActor())

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "List")
	})

	t.Run("Error_FromAfterTo", func(t *testing.T) {
		handler, mockUseCase := setupTestAuditEventHandler(t)

		c, w := createTestContext(http.MethodGet,
			"/v1/audit-events?created_at_from=2026-02-14T00:00:00Z&created_at_to=2026-02-01T00:00:00Z", nil)
		withTestActor(c, testActor())

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "List")
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestAuditEventHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/audit-events?limit=0", nil)
		withTestActor(c, testActor())

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "List")
	})
}
