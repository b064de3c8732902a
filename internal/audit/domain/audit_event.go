// Package domain defines the audit trail domain model. Audit events are
// append-only: corrections are new events, never mutations, and retention
// dates only ever move later.
package domain

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/phiguard/internal/errors"
	appvalidation "github.com/allisson/phiguard/internal/validation"
)

// EventKind classifies the kind of access an audit event records.
type EventKind string

// Supported event kinds.
const (
	EventAccess EventKind = "access"
	EventView   EventKind = "view"
	EventModify EventKind = "modify"
	EventDelete EventKind = "delete"
	EventExport EventKind = "export"
	EventPrint  EventKind = "print"
	EventShare  EventKind = "share"
	EventBreach EventKind = "breach"
)

// Severity grades how serious an audit event is.
type Severity string

// Supported severities.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AuditEvent is a tamper-evident record of one access to protected data.
//
// Details are sanitized before the event is constructed; no free-form user
// content reaches the store. Encrypted is a structural invariant of the store
// this engine writes to (the store encrypts at rest), and RetentionUntil is
// computed by the use case, never supplied by callers.
//
// Signature is an HMAC-SHA256 over the canonical event fields, keyed from the
// master secret. Events written while no master secret was configured carry
// no signature.
type AuditEvent struct {
	ID             uuid.UUID
	ActorID        string
	OrganizationID string
	Action         string
	Resource       string
	ResourceID     string
	Details        map[string]any
	PHIAccessed    bool
	EventKind      EventKind
	Justification  string
	SessionID      string
	IPAddress      string
	UserAgent      string
	Severity       Severity
	RetentionUntil time.Time
	Encrypted      bool
	Signature      []byte
	CreatedAt      time.Time
}

// AuditEventInput carries the caller-supplied fields of an audit event.
// Retention and sanitization are applied by the use case; callers cannot
// influence either.
type AuditEventInput struct {
	ActorID        string
	OrganizationID string
	Action         string
	Resource       string
	ResourceID     string
	Details        map[string]any
	PHIAccessed    bool
	EventKind      EventKind
	Justification  string
	SessionID      string
	IPAddress      string
	UserAgent      string
	Severity       Severity
}

// Validate checks the input fields against the domain rules.
func (i *AuditEventInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.ActorID, validation.Required, validation.Length(1, 255)),
		validation.Field(&i.OrganizationID, validation.Required, validation.Length(1, 255)),
		validation.Field(&i.Action, validation.Required, validation.Length(1, 255)),
		validation.Field(&i.Resource, validation.Required, validation.Length(1, 255)),
		validation.Field(&i.EventKind, validation.Required, validation.In(
			EventAccess, EventView, EventModify, EventDelete,
			EventExport, EventPrint, EventShare, EventBreach,
		)),
		validation.Field(&i.Severity, validation.Required, validation.In(
			SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical,
		)),
	)
	return appvalidation.WrapValidationError(err)
}

// Audit trail error definitions.
var (
	// ErrAuditWriteFailed indicates the audit store rejected a write. The
	// operation being audited must abort: an unlogged action is worse than
	// no action.
	ErrAuditWriteFailed = apperrors.Wrap(apperrors.ErrPersistence, "audit event write failed")

	// ErrRetentionTooShort indicates an attempt to configure audit retention
	// below the mandated floor.
	ErrRetentionTooShort = apperrors.Wrap(apperrors.ErrPolicyViolation, "audit retention below mandated floor")

	// ErrSignatureInvalid indicates a stored audit event no longer matches its
	// signature. The trail must be treated as tampered with.
	ErrSignatureInvalid = apperrors.Wrap(apperrors.ErrAuthentication, "audit event signature verification failed")
)
