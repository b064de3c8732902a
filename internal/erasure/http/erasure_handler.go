// Package http provides HTTP handlers for secure erasure operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
	"github.com/allisson/phiguard/internal/erasure/http/dto"
	erasureUseCase "github.com/allisson/phiguard/internal/erasure/usecase"
	apperrors "github.com/allisson/phiguard/internal/errors"
	"github.com/allisson/phiguard/internal/gate"
	"github.com/allisson/phiguard/internal/httputil"
)

// ErasureHandler handles HTTP requests for secure erasure operations.
type ErasureHandler struct {
	erasureUseCase erasureUseCase.ErasureUseCase
	defaultMethod  erasureDomain.Method
	logger         *slog.Logger
}

// NewErasureHandler creates a new erasure handler with required dependencies.
func NewErasureHandler(
	erasureUseCase erasureUseCase.ErasureUseCase,
	defaultMethod erasureDomain.Method,
	logger *slog.Logger,
) *ErasureHandler {
	return &ErasureHandler{
		erasureUseCase: erasureUseCase,
		defaultMethod:  defaultMethod,
		logger:         logger,
	}
}

// EraseHandler destroys a file and records the attempt.
// POST /v1/erasures
// Routed behind the access gate: the justification audit event is written
// before this handler runs. Returns 201 Created with the deletion record on
// success. A precondition failure returns 422 with the failure recorded; the
// deletion record exists either way.
func (h *ErasureHandler) EraseHandler(c *gin.Context) {
	actor, ok := gate.GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "missing actor identity"), h.logger)
		return
	}

	var req dto.EraseRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	record, err := h.erasureUseCase.Erase(c.Request.Context(), actor, req.ToInput(h.defaultMethod))
	if err != nil {
		// A record may exist even when the erase failed. Map the error to a
		// status but keep the handler response machine-readable.
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapDeletionRecordToResponse(record))
}

// ListHandler retrieves deletion records with pagination support.
// GET /v1/erasures?offset=0&limit=50
// The organization scope comes from the authenticated actor. Returns 200 OK
// with records ordered by erased_at descending (newest first).
func (h *ErasureHandler) ListHandler(c *gin.Context) {
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

	records, err := h.erasureUseCase.List(c.Request.Context(), actor.OrganizationID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapDeletionRecordsToListResponse(records)
	c.JSON(http.StatusOK, response)
}
