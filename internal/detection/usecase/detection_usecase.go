package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
	detectionDomain "github.com/allisson/phiguard/internal/detection/domain"
	detectionService "github.com/allisson/phiguard/internal/detection/service"
	apperrors "github.com/allisson/phiguard/internal/errors"
	"github.com/allisson/phiguard/internal/gate"
)

// detectionUseCase implements DetectionUseCase.
type detectionUseCase struct {
	scanner          *detectionService.Scanner
	detectionLogRepo DetectionLogRepository
	auditRecorder    AuditRecorder
}

// NewDetectionUseCase creates a new DetectionUseCase with the provided dependencies.
func NewDetectionUseCase(
	scanner *detectionService.Scanner,
	detectionLogRepo DetectionLogRepository,
	auditRecorder AuditRecorder,
) DetectionUseCase {
	return &detectionUseCase{
		scanner:          scanner,
		detectionLogRepo: detectionLogRepo,
		auditRecorder:    auditRecorder,
	}
}

// Scan classifies text and records the side effects the detection policy
// requires. The raw text never leaves this method: the detection log and the
// audit event carry only pattern kinds, counts and scores.
//
// A detection log is persisted whenever anything was detected. An audit event
// is additionally recorded when the confidence score crosses the audit
// threshold, with severity graded from the score. Either write failing fails
// the scan: an unrecorded detection is a policy violation, not a soft error.
func (d *detectionUseCase) Scan(
	ctx context.Context,
	actor gate.Actor,
	text string,
) (detectionDomain.DetectionVerdict, error) {
	verdict := d.scanner.Scan(text)
	if !verdict.HasDetections() {
		return verdict, nil
	}

	log := &detectionDomain.DetectionLog{
		ID:              uuid.Must(uuid.NewV7()),
		ActorID:         actor.ID,
		OrganizationID:  actor.OrganizationID,
		DetectedTypes:   verdict.DetectedTypes,
		ConfidenceScore: verdict.ConfidenceScore,
		MatchCount:      len(verdict.Matches),
		Quarantined:     verdict.Quarantined,
		CreatedAt:       time.Now().UTC(),
	}
	if err := d.detectionLogRepo.Create(ctx, log); err != nil {
		return detectionDomain.DetectionVerdict{}, apperrors.Wrap(err, "failed to persist detection log")
	}

	if detectionDomain.ShouldAudit(verdict.ConfidenceScore) {
		kinds := make([]string, 0, len(verdict.DetectedTypes))
		for _, kind := range verdict.DetectedTypes {
			kinds = append(kinds, string(kind))
		}

		input := &auditDomain.AuditEventInput{
			ActorID:        actor.ID,
			OrganizationID: actor.OrganizationID,
			Action:         "phi.detected",
			Resource:       "detection:" + log.ID.String(),
			ResourceID:     log.ID.String(),
			Details: map[string]any{
				"detected_types":   kinds,
				"confidence_score": verdict.ConfidenceScore,
				"match_count":      len(verdict.Matches),
				"quarantined":      verdict.Quarantined,
			},
			PHIAccessed:   true,
			EventKind:     auditDomain.EventAccess,
			SessionID:     actor.SessionID,
			IPAddress:     actor.IPAddress,
			UserAgent:     actor.UserAgent,
			Severity:      detectionDomain.SeverityForConfidence(verdict.ConfidenceScore),
			Justification: "automated detection",
		}
		if _, err := d.auditRecorder.Record(ctx, input); err != nil {
			return detectionDomain.DetectionVerdict{}, apperrors.Wrap(err, "failed to record detection audit event")
		}
	}

	return verdict, nil
}

// Redact replaces every detected span in text with a per-kind placeholder.
// Pure transformation with no side effects: redaction is safe to repeat and
// produces no logs of its own.
func (d *detectionUseCase) Redact(text string) string {
	return d.scanner.Redact(text)
}
