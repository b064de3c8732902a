package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
	"github.com/allisson/phiguard/internal/database"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

// MySQLAuditEventRepository implements AuditEvent persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLAuditEventRepository struct {
	db *sql.DB
}

// Create inserts a new AuditEvent into the MySQL database using BINARY(16) for UUIDs.
// Uses transaction support via database.GetTx(). Handles nil details as database NULL.
func (m *MySQLAuditEventRepository) Create(ctx context.Context, event *auditDomain.AuditEvent) error {
	querier := database.GetTx(ctx, m.db)

	var detailsJSON []byte
	var err error

	// Handle nil details as NULL
	if event.Details != nil {
		detailsJSON, err = json.Marshal(event.Details)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit event details")
		}
	}

	query := `INSERT INTO audit_events (id, actor_id, organization_id, action, resource, resource_id,
			  details, phi_accessed, event_kind, justification, session_id, ip_address, user_agent,
			  severity, retention_until, encrypted, signature, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit event id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		event.ActorID,
		event.OrganizationID,
		event.Action,
		event.Resource,
		event.ResourceID,
		detailsJSON,
		event.PHIAccessed,
		string(event.EventKind),
		event.Justification,
		event.SessionID,
		event.IPAddress,
		event.UserAgent,
		string(event.Severity),
		event.RetentionUntil,
		event.Encrypted,
		event.Signature,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit event")
	}

	return nil
}

// List retrieves audit events for an organization ordered by created_at descending
// (newest first) with pagination and optional time-based filtering. Accepts
// createdAtFrom and createdAtTo as optional filters (nil means no filter). Both
// boundaries are inclusive (>= and <=). All timestamps are expected in UTC.
// UUIDs are stored as BINARY(16) and must be unmarshaled.
func (m *MySQLAuditEventRepository) List(
	ctx context.Context,
	organizationID string,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.AuditEvent, error) {
	querier := database.GetTx(ctx, m.db)

	// Build dynamic WHERE clause based on provided filters
	conditions := []string{"organization_id = ?"}
	args := []any{organizationID}

	if createdAtFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *createdAtFrom)
	}

	if createdAtTo != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *createdAtTo)
	}

	query := `SELECT id, actor_id, organization_id, action, resource, resource_id,
			  details, phi_accessed, event_kind, justification, session_id, ip_address, user_agent,
			  severity, retention_until, encrypted, signature, created_at
			  FROM audit_events
			  WHERE ` + strings.Join(conditions, " AND ") + `
			  ORDER BY created_at DESC LIMIT ? OFFSET ?`

	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanMySQLAuditEvents(rows)
}

// ListByCreatedAtRange pages over audit events from all organizations created
// inside the inclusive window, ordered by created_at ascending. Nil boundaries
// are open-ended. Used by signature verification.
func (m *MySQLAuditEventRepository) ListByCreatedAtRange(
	ctx context.Context,
	from, to *time.Time,
	offset, limit int,
) ([]*auditDomain.AuditEvent, error) {
	querier := database.GetTx(ctx, m.db)

	conditions := []string{"1 = 1"}
	args := []any{}

	if from != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *from)
	}

	if to != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *to)
	}

	query := `SELECT id, actor_id, organization_id, action, resource, resource_id,
			  details, phi_accessed, event_kind, justification, session_id, ip_address, user_agent,
			  severity, retention_until, encrypted, signature, created_at
			  FROM audit_events
			  WHERE ` + strings.Join(conditions, " AND ") + `
			  ORDER BY created_at ASC LIMIT ? OFFSET ?`

	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events by created_at range")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanMySQLAuditEvents(rows)
}

// scanMySQLAuditEvents reads all rows into AuditEvent values, unmarshaling
// BINARY(16) UUIDs.
func scanMySQLAuditEvents(rows *sql.Rows) ([]*auditDomain.AuditEvent, error) {
	// Initialize empty slice to avoid returning nil for empty results
	events := make([]*auditDomain.AuditEvent, 0)
	for rows.Next() {
		var event auditDomain.AuditEvent
		var idBinary []byte
		var detailsJSON []byte
		var eventKind, severity string

		err := rows.Scan(
			&idBinary,
			&event.ActorID,
			&event.OrganizationID,
			&event.Action,
			&event.Resource,
			&event.ResourceID,
			&detailsJSON,
			&event.PHIAccessed,
			&eventKind,
			&event.Justification,
			&event.SessionID,
			&event.IPAddress,
			&event.UserAgent,
			&severity,
			&event.RetentionUntil,
			&event.Encrypted,
			&event.Signature,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit event")
		}

		// Unmarshal UUID from BINARY(16)
		if err := event.ID.UnmarshalBinary(idBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit event id")
		}

		event.EventKind = auditDomain.EventKind(eventKind)
		event.Severity = auditDomain.Severity(severity)

		// Unmarshal details if not NULL
		if detailsJSON != nil {
			if err := json.Unmarshal(detailsJSON, &event.Details); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal audit event details")
			}
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit events")
	}

	return events, nil
}

// CountByOrganization returns the number of audit events recorded for an organization.
func (m *MySQLAuditEventRepository) CountByOrganization(
	ctx context.Context,
	organizationID string,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM audit_events WHERE organization_id = ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, organizationID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count audit events")
	}

	return count, nil
}

// NewMySQLAuditEventRepository creates a new MySQL AuditEvent repository.
func NewMySQLAuditEventRepository(db *sql.DB) *MySQLAuditEventRepository {
	return &MySQLAuditEventRepository{db: db}
}
