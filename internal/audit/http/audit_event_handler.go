// Package http provides HTTP handlers for audit trail operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/phiguard/internal/audit/http/dto"
	auditUseCase "github.com/allisson/phiguard/internal/audit/usecase"
	apperrors "github.com/allisson/phiguard/internal/errors"
	"github.com/allisson/phiguard/internal/gate"
	"github.com/allisson/phiguard/internal/httputil"
)

// AuditEventHandler handles HTTP requests for audit trail operations.
type AuditEventHandler struct {
	auditUseCase auditUseCase.AuditUseCase
	logger       *slog.Logger
}

// NewAuditEventHandler creates a new audit event handler with required dependencies.
func NewAuditEventHandler(
	auditUseCase auditUseCase.AuditUseCase,
	logger *slog.Logger,
) *AuditEventHandler {
	return &AuditEventHandler{
		auditUseCase: auditUseCase,
		logger:       logger,
	}
}

// ListHandler retrieves audit events with pagination support and optional time-based filtering.
// GET /v1/audit-events?offset=0&limit=50&created_at_from=2026-02-01T00:00:00Z&created_at_to=2026-02-14T23:59:59Z
// The organization scope comes from the authenticated actor, never from a query
// parameter: callers can only read their own organization's trail. Returns 200 OK
// with events ordered by created_at descending (newest first). Accepts optional
// created_at_from and created_at_to query parameters in RFC3339 format. Timestamps
// are converted to UTC. Both boundaries are inclusive (>= and <=).
func (h *AuditEventHandler) ListHandler(c *gin.Context) {
	actor, ok := gate.GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "missing actor identity"), h.logger)
		return
	}

	// Parse offset and limit query parameters
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Parse optional created_at_from query parameter
	var createdAtFrom *time.Time
	if fromStr := c.Query("created_at_from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid created_at_from format: must be RFC3339 (e.g., 2026-02-01T00:00:00Z)"),
				h.logger)
			return
		}
		utcTime := parsed.UTC()
		createdAtFrom = &utcTime
	}

	// Parse optional created_at_to query parameter
	var createdAtTo *time.Time
	if toStr := c.Query("created_at_to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid created_at_to format: must be RFC3339 (e.g., 2026-02-14T23:59:59Z)"),
				h.logger)
			return
		}
		utcTime := parsed.UTC()
		createdAtTo = &utcTime
	}

	// Validate that created_at_from is before or equal to created_at_to
	if createdAtFrom != nil && createdAtTo != nil && createdAtFrom.After(*createdAtTo) {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("created_at_from must be before or equal to created_at_to"),
			h.logger)
		return
	}

	// Call use case
	events, err := h.auditUseCase.List(
		c.Request.Context(), actor.OrganizationID, offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Map to response
	response := dto.MapAuditEventsToListResponse(events)
	c.JSON(http.StatusOK, response)
}
