// Package repository implements audit event persistence for PostgreSQL and
// MySQL. The stores are append-only: no update or delete statements exist.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
	"github.com/allisson/phiguard/internal/database"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

// PostgreSQLAuditEventRepository implements AuditEvent persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLAuditEventRepository struct {
	db *sql.DB
}

// Create inserts a new AuditEvent into the PostgreSQL database. Uses transaction
// support via database.GetTx(). Handles nil details as database NULL.
func (p *PostgreSQLAuditEventRepository) Create(ctx context.Context, event *auditDomain.AuditEvent) error {
	querier := database.GetTx(ctx, p.db)

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
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err = querier.ExecContext(
		ctx,
		query,
		event.ID,
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
// (newest first) with pagination and optional inclusive time-range filtering.
// Returns empty slice if no audit events found.
func (p *PostgreSQLAuditEventRepository) List(
	ctx context.Context,
	organizationID string,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.AuditEvent, error) {
	querier := database.GetTx(ctx, p.db)

	var sb strings.Builder
	sb.WriteString(`SELECT id, actor_id, organization_id, action, resource, resource_id,
			  details, phi_accessed, event_kind, justification, session_id, ip_address, user_agent,
			  severity, retention_until, encrypted, signature, created_at
			  FROM audit_events
			  WHERE organization_id = $1`)

	args := []any{organizationID}
	if createdAtFrom != nil {
		args = append(args, *createdAtFrom)
		sb.WriteString(" AND created_at >= $" + strconv.Itoa(len(args)))
	}
	if createdAtTo != nil {
		args = append(args, *createdAtTo)
		sb.WriteString(" AND created_at <= $" + strconv.Itoa(len(args)))
	}

	args = append(args, limit)
	sb.WriteString(" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)))
	args = append(args, offset)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	rows, err := querier.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanAuditEvents(rows)
}

// ListByCreatedAtRange pages over audit events from all organizations created
// inside the inclusive window, ordered by created_at ascending. Nil boundaries
// are open-ended. Used by signature verification.
func (p *PostgreSQLAuditEventRepository) ListByCreatedAtRange(
	ctx context.Context,
	from, to *time.Time,
	offset, limit int,
) ([]*auditDomain.AuditEvent, error) {
	querier := database.GetTx(ctx, p.db)

	var sb strings.Builder
	sb.WriteString(`SELECT id, actor_id, organization_id, action, resource, resource_id,
			  details, phi_accessed, event_kind, justification, session_id, ip_address, user_agent,
			  severity, retention_until, encrypted, signature, created_at
			  FROM audit_events
			  WHERE 1 = 1`)

	args := []any{}
	if from != nil {
		args = append(args, *from)
		sb.WriteString(" AND created_at >= $" + strconv.Itoa(len(args)))
	}
	if to != nil {
		args = append(args, *to)
		sb.WriteString(" AND created_at <= $" + strconv.Itoa(len(args)))
	}

	args = append(args, limit)
	sb.WriteString(" ORDER BY created_at ASC LIMIT $" + strconv.Itoa(len(args)))
	args = append(args, offset)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	rows, err := querier.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events by created_at range")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanAuditEvents(rows)
}

// CountByOrganization returns the number of audit events recorded for an
// organization. Used by the compliance status check to verify audit history
// exists.
func (p *PostgreSQLAuditEventRepository) CountByOrganization(
	ctx context.Context,
	organizationID string,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM audit_events WHERE organization_id = $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, organizationID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count audit events")
	}

	return count, nil
}

// scanAuditEvents reads all rows into AuditEvent values.
func scanAuditEvents(rows *sql.Rows) ([]*auditDomain.AuditEvent, error) {
	// Initialize empty slice to avoid returning nil for empty results
	events := make([]*auditDomain.AuditEvent, 0)
	for rows.Next() {
		var event auditDomain.AuditEvent
		var detailsJSON []byte
		var eventKind, severity string

		err := rows.Scan(
			&event.ID,
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

// NewPostgreSQLAuditEventRepository creates a new PostgreSQL AuditEvent repository.
func NewPostgreSQLAuditEventRepository(db *sql.DB) *PostgreSQLAuditEventRepository {
	return &PostgreSQLAuditEventRepository{db: db}
}
