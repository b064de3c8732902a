package usecase

import (
	"context"
	"time"

	detectionDomain "github.com/allisson/phiguard/internal/detection/domain"
	"github.com/allisson/phiguard/internal/gate"
	"github.com/allisson/phiguard/internal/metrics"
)

// detectionUseCaseWithMetrics decorates DetectionUseCase with metrics instrumentation.
type detectionUseCaseWithMetrics struct {
	next    DetectionUseCase
	metrics metrics.BusinessMetrics
}

// NewDetectionUseCaseWithMetrics wraps a DetectionUseCase with metrics recording.
func NewDetectionUseCaseWithMetrics(useCase DetectionUseCase, m metrics.BusinessMetrics) DetectionUseCase {
	return &detectionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Scan records metrics for scan operations.
func (d *detectionUseCaseWithMetrics) Scan(
	ctx context.Context,
	actor gate.Actor,
	text string,
) (detectionDomain.DetectionVerdict, error) {
	start := time.Now()
	verdict, err := d.next.Scan(ctx, actor, text)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "detection", "scan", status)
	d.metrics.RecordDuration(ctx, "detection", "scan", time.Since(start), status)

	return verdict, err
}

// Redact records metrics for redact operations.
func (d *detectionUseCaseWithMetrics) Redact(text string) string {
	start := time.Now()
	redacted := d.next.Redact(text)

	d.metrics.RecordOperation(context.Background(), "detection", "redact", "success")
	d.metrics.RecordDuration(context.Background(), "detection", "redact", time.Since(start), "success")

	return redacted
}
