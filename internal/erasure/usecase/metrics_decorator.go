package usecase

import (
	"context"
	"time"

	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
	"github.com/allisson/phiguard/internal/gate"
	"github.com/allisson/phiguard/internal/metrics"
)

// erasureUseCaseWithMetrics decorates ErasureUseCase with metrics instrumentation.
type erasureUseCaseWithMetrics struct {
	next    ErasureUseCase
	metrics metrics.BusinessMetrics
}

// NewErasureUseCaseWithMetrics wraps an ErasureUseCase with metrics recording.
func NewErasureUseCaseWithMetrics(useCase ErasureUseCase, m metrics.BusinessMetrics) ErasureUseCase {
	return &erasureUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Erase records metrics for erase operations.
func (e *erasureUseCaseWithMetrics) Erase(
	ctx context.Context,
	actor gate.Actor,
	input *erasureDomain.EraseInput,
) (*erasureDomain.DeletionRecord, error) {
	start := time.Now()
	record, err := e.next.Erase(ctx, actor, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "erasure", "erase_file", status)
	e.metrics.RecordDuration(ctx, "erasure", "erase_file", time.Since(start), status)

	return record, err
}

// List records metrics for deletion record listing operations.
func (e *erasureUseCaseWithMetrics) List(
	ctx context.Context,
	organizationID string,
	offset, limit int,
) ([]*erasureDomain.DeletionRecord, error) {
	start := time.Now()
	records, err := e.next.List(ctx, organizationID, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "erasure", "list_deletion_records", status)
	e.metrics.RecordDuration(ctx, "erasure", "list_deletion_records", time.Since(start), status)

	return records, err
}
