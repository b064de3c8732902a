// Package usecase implements business logic orchestration for sensitive-content
// detection operations.
package usecase

import (
	"context"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
	detectionDomain "github.com/allisson/phiguard/internal/detection/domain"
	"github.com/allisson/phiguard/internal/gate"
)

// DetectionUseCase exposes the scan and redact operations, persisting a
// sanitized detection log and escalating to the audit trail as a side effect.
type DetectionUseCase interface {
	// Scan classifies text and records the sanitized side effects required by
	// the detection policy.
	Scan(ctx context.Context, actor gate.Actor, text string) (detectionDomain.DetectionVerdict, error)

	// Redact replaces every detected span in text with a per-kind placeholder.
	Redact(text string) string
}

// DetectionLogRepository persists sanitized detection logs. Append-only.
type DetectionLogRepository interface {
	Create(ctx context.Context, log *detectionDomain.DetectionLog) error
	List(ctx context.Context, organizationID string, offset, limit int) ([]*detectionDomain.DetectionLog, error)
}

// AuditRecorder is the audit trail surface the detection use case needs.
type AuditRecorder interface {
	Record(ctx context.Context, input *auditDomain.AuditEventInput) (*auditDomain.AuditEvent, error)
}
