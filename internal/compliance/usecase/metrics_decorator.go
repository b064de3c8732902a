package usecase

import (
	"context"
	"time"

	complianceDomain "github.com/allisson/phiguard/internal/compliance/domain"
	"github.com/allisson/phiguard/internal/metrics"
)

// complianceUseCaseWithMetrics decorates ComplianceUseCase with metrics instrumentation.
type complianceUseCaseWithMetrics struct {
	next    ComplianceUseCase
	metrics metrics.BusinessMetrics
}

// NewComplianceUseCaseWithMetrics wraps a ComplianceUseCase with metrics recording.
func NewComplianceUseCaseWithMetrics(useCase ComplianceUseCase, m metrics.BusinessMetrics) ComplianceUseCase {
	return &complianceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Status records metrics for posture checks.
func (c *complianceUseCaseWithMetrics) Status(
	ctx context.Context,
	organizationID string,
) (*complianceDomain.ComplianceStatus, error) {
	start := time.Now()
	status, err := c.next.Status(ctx, organizationID)

	result := "success"
	if err != nil {
		result = "error"
	}

	c.metrics.RecordOperation(ctx, "compliance", "status", result)
	c.metrics.RecordDuration(ctx, "compliance", "status", time.Since(start), result)

	return status, err
}

// UpsertSetting records metrics for setting writes.
func (c *complianceUseCaseWithMetrics) UpsertSetting(
	ctx context.Context,
	input *complianceDomain.ComplianceSettingInput,
) (*complianceDomain.ComplianceSetting, error) {
	start := time.Now()
	setting, err := c.next.UpsertSetting(ctx, input)

	result := "success"
	if err != nil {
		result = "error"
	}

	c.metrics.RecordOperation(ctx, "compliance", "upsert_setting", result)
	c.metrics.RecordDuration(ctx, "compliance", "upsert_setting", time.Since(start), result)

	return setting, err
}

// ListSettings records metrics for setting reads.
func (c *complianceUseCaseWithMetrics) ListSettings(
	ctx context.Context,
	organizationID string,
) ([]*complianceDomain.ComplianceSetting, error) {
	start := time.Now()
	settings, err := c.next.ListSettings(ctx, organizationID)

	result := "success"
	if err != nil {
		result = "error"
	}

	c.metrics.RecordOperation(ctx, "compliance", "list_settings", result)
	c.metrics.RecordDuration(ctx, "compliance", "list_settings", time.Since(start), result)

	return settings, err
}
