package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
)

func testAuditEvent() *auditDomain.AuditEvent {
	now := time.Now().UTC()
	return &auditDomain.AuditEvent{
		ID:             uuid.Must(uuid.NewV7()),
		ActorID:        "user-1",
		OrganizationID: "org-1",
		Action:         "phi.access",
		Resource:       "/records/42",
		ResourceID:     "42",
		Details:        map[string]any{"reason": "chart review"},
		PHIAccessed:    true,
		EventKind:      auditDomain.EventAccess,
		Justification:  "treatment",
		SessionID:      "sess-1",
		IPAddress:      "10.0.0.1",
		UserAgent:      "Mozilla/5.0",
		Severity:       auditDomain.SeverityMedium,
		RetentionUntil: now.Add(6 * 365 * 24 * time.Hour),
		Encrypted:      true,
		Signature:      []byte("0123456789abcdef0123456789abcdef"),
		CreatedAt:      now,
	}
}

func TestPostgreSQLAuditEventRepository_Create(t *testing.T) {
	t.Run("inserts the event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLAuditEventRepository(db)
		event := testAuditEvent()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_events")).
			WithArgs(
				event.ID, event.ActorID, event.OrganizationID, event.Action,
				event.Resource, event.ResourceID, sqlmock.AnyArg(), event.PHIAccessed,
				string(event.EventKind), event.Justification, event.SessionID,
				event.IPAddress, event.UserAgent, string(event.Severity),
				event.RetentionUntil, event.Encrypted, event.Signature, event.CreatedAt,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err = repo.Create(context.Background(), event)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLAuditEventRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_events")).
			WillReturnError(errors.New("connection refused"))

		err = repo.Create(context.Background(), testAuditEvent())
		assert.Error(t, err)
	})
}

func TestPostgreSQLAuditEventRepository_List(t *testing.T) {
	columns := []string{
		"id", "actor_id", "organization_id", "action", "resource", "resource_id",
		"details", "phi_accessed", "event_kind", "justification", "session_id",
		"ip_address", "user_agent", "severity", "retention_until", "encrypted", "signature", "created_at",
	}

	rowsFor := func(event *auditDomain.AuditEvent) *sqlmock.Rows {
		return sqlmock.NewRows(columns).AddRow(
			event.ID, event.ActorID, event.OrganizationID, event.Action,
			event.Resource, event.ResourceID, []byte(`{"reason":"chart review"}`),
			event.PHIAccessed, string(event.EventKind), event.Justification,
			event.SessionID, event.IPAddress, event.UserAgent, string(event.Severity),
			event.RetentionUntil, event.Encrypted, event.Signature, event.CreatedAt,
		)
	}

	t.Run("lists events without time filters", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLAuditEventRepository(db)
		event := testAuditEvent()

		mock.ExpectQuery(regexp.QuoteMeta("FROM audit_events")).
			WithArgs("org-1", 50, 0).
			WillReturnRows(rowsFor(event))

		events, err := repo.List(context.Background(), "org-1", 0, 50, nil, nil)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, event.ID, events[0].ID)
		assert.Equal(t, auditDomain.EventAccess, events[0].EventKind)
		assert.Equal(t, "chart review", events[0].Details["reason"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies inclusive time filters", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLAuditEventRepository(db)
		from := time.Now().UTC().Add(-24 * time.Hour)
		to := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("created_at >= $2 AND created_at <= $3")).
			WithArgs("org-1", from, to, 50, 0).
			WillReturnRows(sqlmock.NewRows(columns))

		events, err := repo.List(context.Background(), "org-1", 0, 50, &from, &to)
		require.NoError(t, err)
		assert.Empty(t, events)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLAuditEventRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM audit_events")).
			WithArgs("org-1", 50, 0).
			WillReturnRows(sqlmock.NewRows(columns))

		events, err := repo.List(context.Background(), "org-1", 0, 50, nil, nil)
		require.NoError(t, err)
		assert.NotNil(t, events)
		assert.Empty(t, events)
	})
}

func TestPostgreSQLAuditEventRepository_ListByCreatedAtRange(t *testing.T) {
	columns := []string{
		"id", "actor_id", "organization_id", "action", "resource", "resource_id",
		"details", "phi_accessed", "event_kind", "justification", "session_id",
		"ip_address", "user_agent", "severity", "retention_until", "encrypted", "signature", "created_at",
	}

	t.Run("lists events across organizations ascending", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLAuditEventRepository(db)
		event := testAuditEvent()

		rows := sqlmock.NewRows(columns).AddRow(
			event.ID, event.ActorID, event.OrganizationID, event.Action,
			event.Resource, event.ResourceID, []byte(`{"reason":"chart review"}`),
			event.PHIAccessed, string(event.EventKind), event.Justification,
			event.SessionID, event.IPAddress, event.UserAgent, string(event.Severity),
			event.RetentionUntil, event.Encrypted, event.Signature, event.CreatedAt,
		)

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at ASC")).
			WithArgs(500, 0).
			WillReturnRows(rows)

		events, err := repo.ListByCreatedAtRange(context.Background(), nil, nil, 0, 500)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, event.ID, events[0].ID)
		assert.Equal(t, event.Signature, events[0].Signature)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies inclusive time filters", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLAuditEventRepository(db)
		from := time.Now().UTC().Add(-24 * time.Hour)
		to := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("created_at >= $1 AND created_at <= $2")).
			WithArgs(from, to, 500, 0).
			WillReturnRows(sqlmock.NewRows(columns))

		events, err := repo.ListByCreatedAtRange(context.Background(), &from, &to, 0, 500)
		require.NoError(t, err)
		assert.Empty(t, events)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLAuditEventRepository_CountByOrganization(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLAuditEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM audit_events WHERE organization_id = $1")).
		WithArgs("org-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := repo.CountByOrganization(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
