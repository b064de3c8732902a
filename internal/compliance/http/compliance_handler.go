// Package http provides HTTP handlers for compliance posture operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	complianceDomain "github.com/allisson/phiguard/internal/compliance/domain"
	"github.com/allisson/phiguard/internal/compliance/http/dto"
	complianceUseCase "github.com/allisson/phiguard/internal/compliance/usecase"
	apperrors "github.com/allisson/phiguard/internal/errors"
	"github.com/allisson/phiguard/internal/gate"
	"github.com/allisson/phiguard/internal/httputil"
	customValidation "github.com/allisson/phiguard/internal/validation"
)

// ComplianceHandler handles HTTP requests for compliance posture operations.
type ComplianceHandler struct {
	complianceUseCase complianceUseCase.ComplianceUseCase
	logger            *slog.Logger
}

// NewComplianceHandler creates a new compliance handler with required dependencies.
func NewComplianceHandler(
	complianceUseCase complianceUseCase.ComplianceUseCase,
	logger *slog.Logger,
) *ComplianceHandler {
	return &ComplianceHandler{
		complianceUseCase: complianceUseCase,
		logger:            logger,
	}
}

// StatusHandler reports the aggregated compliance posture.
// GET /v1/compliance/status
// The organization scope comes from the authenticated actor. Returns 200 OK
// with the posture report; a non-compliant posture is still a 200, the report
// itself carries the findings.
func (h *ComplianceHandler) StatusHandler(c *gin.Context) {
	actor, ok := gate.GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "missing actor identity"), h.logger)
		return
	}

	status, err := h.complianceUseCase.Status(c.Request.Context(), actor.OrganizationID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatusToResponse(status))
}

// UpsertSettingHandler creates or replaces one compliance setting.
// PUT /v1/compliance/settings/:key
// Returns 200 OK with the stored setting.
func (h *ComplianceHandler) UpsertSettingHandler(c *gin.Context) {
	actor, ok := gate.GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "missing actor identity"), h.logger)
		return
	}

	key := c.Param("key")
	if key == "" {
		httputil.HandleBadRequestGin(c, fmt.Errorf("setting key cannot be empty"), h.logger)
		return
	}

	var req dto.UpsertSettingRequest

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

	setting, err := h.complianceUseCase.UpsertSetting(c.Request.Context(), &complianceDomain.ComplianceSettingInput{
		OrganizationID: actor.OrganizationID,
		Key:            key,
		Value:          req.Value,
		UpdatedBy:      actor.ID,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingToResponse(setting))
}

// ListSettingsHandler retrieves all compliance settings for the actor's organization.
// GET /v1/compliance/settings
func (h *ComplianceHandler) ListSettingsHandler(c *gin.Context) {
	actor, ok := gate.GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "missing actor identity"), h.logger)
		return
	}

	settings, err := h.complianceUseCase.ListSettings(c.Request.Context(), actor.OrganizationID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingsToListResponse(settings))
}
