package usecase

import (
	"context"
	"time"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
	"github.com/allisson/phiguard/internal/metrics"
)

// auditUseCaseWithMetrics decorates AuditUseCase with metrics instrumentation.
type auditUseCaseWithMetrics struct {
	next    AuditUseCase
	metrics metrics.BusinessMetrics
}

// NewAuditUseCaseWithMetrics wraps an AuditUseCase with metrics recording.
func NewAuditUseCaseWithMetrics(useCase AuditUseCase, m metrics.BusinessMetrics) AuditUseCase {
	return &auditUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Record records metrics for audit event writes.
func (a *auditUseCaseWithMetrics) Record(
	ctx context.Context,
	input *auditDomain.AuditEventInput,
) (*auditDomain.AuditEvent, error) {
	start := time.Now()
	event, err := a.next.Record(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "audit", "record_event", status)
	a.metrics.RecordDuration(ctx, "audit", "record_event", time.Since(start), status)

	return event, err
}

// List records metrics for audit trail reads.
func (a *auditUseCaseWithMetrics) List(
	ctx context.Context,
	organizationID string,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.AuditEvent, error) {
	start := time.Now()
	events, err := a.next.List(ctx, organizationID, offset, limit, createdAtFrom, createdAtTo)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "audit", "list_events", status)
	a.metrics.RecordDuration(ctx, "audit", "list_events", time.Since(start), status)

	return events, err
}

// VerifyRange records metrics for audit trail verification runs.
func (a *auditUseCaseWithMetrics) VerifyRange(
	ctx context.Context,
	from, to *time.Time,
) (*VerificationReport, error) {
	start := time.Now()
	report, err := a.next.VerifyRange(ctx, from, to)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "audit", "verify_events", status)
	a.metrics.RecordDuration(ctx, "audit", "verify_events", time.Since(start), status)

	return report, err
}
