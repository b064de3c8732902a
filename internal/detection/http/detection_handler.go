// Package http provides HTTP handlers for sensitive-content detection operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/phiguard/internal/detection/http/dto"
	detectionUseCase "github.com/allisson/phiguard/internal/detection/usecase"
	apperrors "github.com/allisson/phiguard/internal/errors"
	"github.com/allisson/phiguard/internal/gate"
	"github.com/allisson/phiguard/internal/httputil"
	customValidation "github.com/allisson/phiguard/internal/validation"
)

// DetectionHandler handles HTTP requests for scan and redact operations.
type DetectionHandler struct {
	detectionUseCase detectionUseCase.DetectionUseCase
	logger           *slog.Logger
}

// NewDetectionHandler creates a new detection handler with required dependencies.
func NewDetectionHandler(
	detectionUseCase detectionUseCase.DetectionUseCase,
	logger *slog.Logger,
) *DetectionHandler {
	return &DetectionHandler{
		detectionUseCase: detectionUseCase,
		logger:           logger,
	}
}

// ScanHandler classifies text for sensitive identifiers.
// POST /v1/detections/scan
// Returns 200 OK with the verdict: detected kinds, confidence score, match
// positions and the quarantine decision. The submitted text is never echoed
// back and never persisted.
func (h *DetectionHandler) ScanHandler(c *gin.Context) {
	actor, ok := gate.GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "missing actor identity"), h.logger)
		return
	}

	var req dto.ScanRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	verdict, err := h.detectionUseCase.Scan(c.Request.Context(), actor, req.Text)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Map to response
	response := dto.MapVerdictToScanResponse(verdict)
	c.JSON(http.StatusOK, response)
}

// RedactHandler replaces detected spans with per-kind placeholders.
// POST /v1/detections/redact
// Returns 200 OK with the redacted text. Redaction is idempotent: running the
// output through this endpoint again returns it unchanged.
func (h *DetectionHandler) RedactHandler(c *gin.Context) {
	var req dto.RedactRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	response := dto.RedactResponse{
		Redacted: h.detectionUseCase.Redact(req.Text),
	}
	c.JSON(http.StatusOK, response)
}
