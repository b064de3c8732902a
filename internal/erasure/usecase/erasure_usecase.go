package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
	erasureService "github.com/allisson/phiguard/internal/erasure/service"
	apperrors "github.com/allisson/phiguard/internal/errors"
	"github.com/allisson/phiguard/internal/gate"
)

// erasureUseCase implements ErasureUseCase.
type erasureUseCase struct {
	shredder           erasureService.Shredder
	deletionRecordRepo DeletionRecordRepository
	auditRecorder      AuditRecorder
}

// NewErasureUseCase creates a new ErasureUseCase with the provided dependencies.
func NewErasureUseCase(
	shredder erasureService.Shredder,
	deletionRecordRepo DeletionRecordRepository,
	auditRecorder AuditRecorder,
) ErasureUseCase {
	return &erasureUseCase{
		shredder:           shredder,
		deletionRecordRepo: deletionRecordRepo,
		auditRecorder:      auditRecorder,
	}
}

// Erase destroys the target file and records the attempt.
//
// The target is fingerprinted before anything is touched: the deletion record
// carries the SHA-256 of what was destroyed. A failed precondition aborts
// before destruction, a failed pass aborts mid-destruction, but in every
// outcome exactly one deletion record and one audit event are written; a
// failed attempt is evidence the same as a successful one. The typed erase
// error is still returned to the caller alongside the record.
func (e *erasureUseCase) Erase(
	ctx context.Context,
	actor gate.Actor,
	input *erasureDomain.EraseInput,
) (*erasureDomain.DeletionRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	record := &erasureDomain.DeletionRecord{
		ID:             uuid.Must(uuid.NewV7()),
		ActorID:        actor.ID,
		OrganizationID: actor.OrganizationID,
		Path:           input.Path,
		Method:         input.Method,
		Justification:  input.Justification,
	}

	var eraseErr error
	fp, err := e.shredder.Fingerprint(input.Path)
	if err != nil {
		record.FailureReason = err.Error()
		eraseErr = err
	} else {
		record.FileSize = fp.Size
		record.ContentHash = fp.ContentHash

		passes, err := e.shredder.Erase(ctx, input.Path, input.Method)
		record.PassesCompleted = passes
		if err != nil {
			record.FailureReason = err.Error()
			eraseErr = err
		} else {
			record.VerificationPassed = true
		}
	}
	record.ErasedAt = time.Now().UTC()

	// The evidence writes must survive the caller giving up: a cancelled
	// erase still destroyed data and still gets its paper trail.
	if err := e.finalize(context.WithoutCancel(ctx), actor, record); err != nil {
		return nil, err
	}
	if eraseErr != nil {
		return record, eraseErr
	}
	return record, nil
}

// finalize persists the deletion record and writes the matching audit event.
// Either write failing is a hard failure: destruction without its paper trail
// is a compliance violation.
func (e *erasureUseCase) finalize(
	ctx context.Context,
	actor gate.Actor,
	record *erasureDomain.DeletionRecord,
) error {
	if err := e.deletionRecordRepo.Create(ctx, record); err != nil {
		return apperrors.Wrap(err, "failed to persist deletion record")
	}

	severity := auditDomain.SeverityHigh
	if !record.VerificationPassed {
		severity = auditDomain.SeverityCritical
	}

	input := &auditDomain.AuditEventInput{
		ActorID:        actor.ID,
		OrganizationID: actor.OrganizationID,
		Action:         "phi.erased",
		Resource:       record.Path,
		ResourceID:     record.ID.String(),
		Details: map[string]any{
			"method":              string(record.Method),
			"file_size":           record.FileSize,
			"passes_completed":    record.PassesCompleted,
			"verification_passed": record.VerificationPassed,
			"failure_reason":      record.FailureReason,
		},
		PHIAccessed:   true,
		EventKind:     auditDomain.EventDelete,
		Justification: record.Justification,
		SessionID:     actor.SessionID,
		IPAddress:     actor.IPAddress,
		UserAgent:     actor.UserAgent,
		Severity:      severity,
	}
	if _, err := e.auditRecorder.Record(ctx, input); err != nil {
		return apperrors.Wrap(err, "failed to record erasure audit event")
	}

	return nil
}

// List retrieves deletion records ordered by erased_at descending.
func (e *erasureUseCase) List(
	ctx context.Context,
	organizationID string,
	offset, limit int,
) ([]*erasureDomain.DeletionRecord, error) {
	records, err := e.deletionRecordRepo.List(ctx, organizationID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list deletion records")
	}
	return records, nil
}

// IsPrecondition reports whether an erase error means nothing was destroyed.
func IsPrecondition(err error) bool {
	return errors.Is(err, erasureDomain.ErrTargetNotErasable)
}
