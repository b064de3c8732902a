package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
	auditService "github.com/allisson/phiguard/internal/audit/service"
	"github.com/allisson/phiguard/internal/config"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

// verifyBatchSize is how many events one verification page loads.
const verifyBatchSize = 500

// auditUseCase implements AuditUseCase.
type auditUseCase struct {
	auditEventRepo AuditEventRepository
	sanitizer      Sanitizer
	signer         auditService.Signer
	signingKey     []byte
	retention      time.Duration
}

// NewAuditUseCase creates a new AuditUseCase with the provided dependencies.
//
// The retention period is validated against the mandated floor once, here:
// configuring audit retention below config.MinAuditRetention is a policy
// violation, not a tunable. Callers of Record cannot influence retention at
// all.
//
// A nil signingKey means the engine runs without a master secret; events are
// then written unsigned and VerifyRange counts them as unsigned rather than
// invalid.
func NewAuditUseCase(
	auditEventRepo AuditEventRepository,
	sanitizer Sanitizer,
	signer auditService.Signer,
	signingKey []byte,
	retention time.Duration,
) (AuditUseCase, error) {
	if retention < config.MinAuditRetention {
		return nil, fmt.Errorf("%w: configured %s, floor %s",
			auditDomain.ErrRetentionTooShort, retention, config.MinAuditRetention)
	}
	return &auditUseCase{
		auditEventRepo: auditEventRepo,
		sanitizer:      sanitizer,
		signer:         signer,
		signingKey:     signingKey,
		retention:      retention,
	}, nil
}

// Record sanitizes and persists one audit event.
//
// Every string field that can carry free-form content passes through the
// sanitizer before the event is constructed; details are sanitized
// recursively. RetentionUntil is computed from the configured retention
// unconditionally and Encrypted is set as a structural invariant of the
// store. A failed persistence is propagated loudly: a missing audit record
// is itself a compliance violation.
func (a *auditUseCase) Record(
	ctx context.Context,
	input *auditDomain.AuditEventInput,
) (*auditDomain.AuditEvent, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var details map[string]any
	if input.Details != nil {
		details = a.sanitizer.SanitizeValue(input.Details).(map[string]any)
	}

	now := time.Now().UTC()
	event := &auditDomain.AuditEvent{
		ID:             uuid.Must(uuid.NewV7()),
		ActorID:        input.ActorID,
		OrganizationID: input.OrganizationID,
		Action:         input.Action,
		Resource:       a.sanitizer.Redact(input.Resource),
		ResourceID:     input.ResourceID,
		Details:        details,
		PHIAccessed:    input.PHIAccessed,
		EventKind:      input.EventKind,
		Justification:  a.sanitizer.Redact(input.Justification),
		SessionID:      input.SessionID,
		IPAddress:      input.IPAddress,
		UserAgent:      input.UserAgent,
		Severity:       input.Severity,
		RetentionUntil: now.Add(a.retention),
		Encrypted:      true,
		CreatedAt:      now,
	}

	if a.signingKey != nil {
		signature, err := a.signer.Sign(a.signingKey, event)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to sign audit event")
		}
		event.Signature = signature
	}

	if err := a.auditEventRepo.Create(ctx, event); err != nil {
		return nil, apperrors.Wrap(auditDomain.ErrAuditWriteFailed, err.Error())
	}

	return event, nil
}

// List retrieves audit events ordered by created_at descending (newest first)
// with pagination and optional time-based filtering. Both boundaries are
// inclusive. All timestamps are expected in UTC.
func (a *auditUseCase) List(
	ctx context.Context,
	organizationID string,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.AuditEvent, error) {
	events, err := a.auditEventRepo.List(ctx, organizationID, offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}

	return events, nil
}

// VerifyRange walks every audit event created inside the window and re-checks
// its signature. Events without a signature are reported as unsigned; with no
// signing key configured every signed event is necessarily unverifiable, so
// verification requires the master secret to be set.
func (a *auditUseCase) VerifyRange(
	ctx context.Context,
	from, to *time.Time,
) (*VerificationReport, error) {
	if a.signingKey == nil {
		return nil, apperrors.Wrap(apperrors.ErrPrecondition,
			"audit verification requires a master secret")
	}

	report := &VerificationReport{}
	offset := 0

	for {
		events, err := a.auditEventRepo.ListByCreatedAtRange(ctx, from, to, offset, verifyBatchSize)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list audit events for verification")
		}
		if len(events) == 0 {
			break
		}

		for _, event := range events {
			report.TotalChecked++

			if len(event.Signature) == 0 {
				report.UnsignedCount++
				continue
			}

			report.SignedCount++
			if err := a.signer.Verify(a.signingKey, event); err != nil {
				report.InvalidCount++
				report.InvalidEvents = append(report.InvalidEvents, InvalidEvent{
					EventID:        event.ID.String(),
					OrganizationID: event.OrganizationID,
					Action:         event.Action,
					CreatedAt:      event.CreatedAt,
					Reason:         err.Error(),
				})
				continue
			}
			report.ValidCount++
		}

		offset += len(events)
	}

	return report, nil
}
