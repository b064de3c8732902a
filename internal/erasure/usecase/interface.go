// Package usecase implements business logic orchestration for secure erasure.
package usecase

import (
	"context"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
	"github.com/allisson/phiguard/internal/gate"
)

// ErasureUseCase exposes the secure erasure operations.
type ErasureUseCase interface {
	// Erase fingerprints the target, destroys it with the requested method,
	// and records a deletion record and an audit event. Exactly one deletion
	// record is written per call, whether the erase succeeded or not.
	Erase(
		ctx context.Context,
		actor gate.Actor,
		input *erasureDomain.EraseInput,
	) (*erasureDomain.DeletionRecord, error)

	// List retrieves deletion records for an organization ordered by erased_at
	// descending (newest first) with pagination.
	List(
		ctx context.Context,
		organizationID string,
		offset, limit int,
	) ([]*erasureDomain.DeletionRecord, error)
}

// DeletionRecordRepository persists deletion records. Append-only.
type DeletionRecordRepository interface {
	Create(ctx context.Context, record *erasureDomain.DeletionRecord) error
	List(
		ctx context.Context,
		organizationID string,
		offset, limit int,
	) ([]*erasureDomain.DeletionRecord, error)
}

// AuditRecorder is the audit trail surface the erasure use case needs.
type AuditRecorder interface {
	Record(ctx context.Context, input *auditDomain.AuditEventInput) (*auditDomain.AuditEvent, error)
}
