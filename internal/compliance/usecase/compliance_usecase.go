package usecase

import (
	"context"
	"fmt"
	"time"

	complianceDomain "github.com/allisson/phiguard/internal/compliance/domain"
	"github.com/allisson/phiguard/internal/config"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

// complianceUseCase implements ComplianceUseCase.
type complianceUseCase struct {
	settingRepo            ComplianceSettingRepository
	auditCounter           AuditCounter
	auditRetention         time.Duration
	masterSecretConfigured bool
}

// NewComplianceUseCase creates a new ComplianceUseCase with the provided
// dependencies. masterSecretConfigured reflects whether the engine booted with
// a usable master secret; it cannot change at runtime.
func NewComplianceUseCase(
	settingRepo ComplianceSettingRepository,
	auditCounter AuditCounter,
	auditRetention time.Duration,
	masterSecretConfigured bool,
) ComplianceUseCase {
	return &complianceUseCase{
		settingRepo:            settingRepo,
		auditCounter:           auditCounter,
		auditRetention:         auditRetention,
		masterSecretConfigured: masterSecretConfigured,
	}
}

// Status aggregates the compliance posture of an organization. Every check
// that fails produces a finding and a matching recommendation; the report is
// compliant only when no findings exist.
func (c *complianceUseCase) Status(
	ctx context.Context,
	organizationID string,
) (*complianceDomain.ComplianceStatus, error) {
	status := &complianceDomain.ComplianceStatus{
		OrganizationID:  organizationID,
		Findings:        []string{},
		Recommendations: []string{},
		CheckedAt:       time.Now().UTC(),
	}

	if !c.masterSecretConfigured {
		status.Findings = append(status.Findings, "master secret is not configured")
		status.Recommendations = append(status.Recommendations,
			"configure MASTER_SECRET or MASTER_SECRET_WRAPPED so envelope encryption is available")
	}

	if c.auditRetention < config.MinAuditRetention {
		status.Findings = append(status.Findings,
			fmt.Sprintf("audit retention %s is below the mandated floor %s",
				c.auditRetention, config.MinAuditRetention))
		status.Recommendations = append(status.Recommendations,
			"raise AUDIT_RETENTION_DAYS to at least six years")
	}

	count, err := c.auditCounter.CountByOrganization(ctx, organizationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count audit events")
	}
	if count == 0 {
		status.Findings = append(status.Findings, "no audit history exists for this organization")
		status.Recommendations = append(status.Recommendations,
			"verify protected-data access flows route through the access gate")
	}

	status.IsCompliant = len(status.Findings) == 0
	return status, nil
}

// UpsertSetting creates or replaces one compliance setting.
func (c *complianceUseCase) UpsertSetting(
	ctx context.Context,
	input *complianceDomain.ComplianceSettingInput,
) (*complianceDomain.ComplianceSetting, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	setting := &complianceDomain.ComplianceSetting{
		OrganizationID: input.OrganizationID,
		Key:            input.Key,
		Value:          input.Value,
		UpdatedBy:      input.UpdatedBy,
		UpdatedAt:      time.Now().UTC(),
	}
	if err := c.settingRepo.Upsert(ctx, setting); err != nil {
		return nil, apperrors.Wrap(err, "failed to upsert compliance setting")
	}

	return setting, nil
}

// ListSettings retrieves all settings for an organization.
func (c *complianceUseCase) ListSettings(
	ctx context.Context,
	organizationID string,
) ([]*complianceDomain.ComplianceSetting, error) {
	settings, err := c.settingRepo.List(ctx, organizationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list compliance settings")
	}
	return settings, nil
}
