// Package usecase implements business logic orchestration for the audit trail.
package usecase

import (
	"context"
	"time"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
)

// AuditUseCase exposes the audit trail operations. The contract is
// append-only: there is no update or delete; corrections are new events.
type AuditUseCase interface {
	// Record sanitizes and persists one audit event, applying the mandated
	// retention unconditionally.
	Record(ctx context.Context, input *auditDomain.AuditEventInput) (*auditDomain.AuditEvent, error)

	// List retrieves audit events for an organization ordered by created_at
	// descending (newest first) with pagination and optional time filtering.
	List(
		ctx context.Context,
		organizationID string,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*auditDomain.AuditEvent, error)

	// VerifyRange re-checks the signatures of all events created inside the
	// given window and reports tampering. Nil boundaries are open-ended.
	VerifyRange(ctx context.Context, from, to *time.Time) (*VerificationReport, error)
}

// VerificationReport summarizes a signature verification run over the audit
// trail. Unsigned events (written while no master secret was configured) are
// counted but not treated as invalid.
type VerificationReport struct {
	TotalChecked  int64
	SignedCount   int64
	UnsignedCount int64
	ValidCount    int64
	InvalidCount  int64
	InvalidEvents []InvalidEvent
}

// InvalidEvent identifies one audit event that failed verification.
type InvalidEvent struct {
	EventID        string    `json:"event_id"`
	OrganizationID string    `json:"organization_id"`
	Action         string    `json:"action"`
	CreatedAt      time.Time `json:"created_at"`
	Reason         string    `json:"reason"`
}

// AuditEventRepository persists audit events. Deliberately append-only: no
// update or delete methods exist.
type AuditEventRepository interface {
	Create(ctx context.Context, event *auditDomain.AuditEvent) error
	List(
		ctx context.Context,
		organizationID string,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*auditDomain.AuditEvent, error)
	CountByOrganization(ctx context.Context, organizationID string) (int64, error)

	// ListByCreatedAtRange pages over events from all organizations created
	// inside the window, ordered by created_at ascending. Used by signature
	// verification.
	ListByCreatedAtRange(
		ctx context.Context,
		from, to *time.Time,
		offset, limit int,
	) ([]*auditDomain.AuditEvent, error)
}

// Sanitizer strips sensitive content from anything heading into the audit
// store. Implemented by the detection scanner.
type Sanitizer interface {
	Redact(text string) string
	SanitizeValue(value any) any
}
