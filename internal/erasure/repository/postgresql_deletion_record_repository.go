// Package repository implements deletion record persistence for PostgreSQL and
// MySQL. Deletion records are append-only proof of destruction.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/phiguard/internal/database"
	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

// PostgreSQLDeletionRecordRepository implements DeletionRecord persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLDeletionRecordRepository struct {
	db *sql.DB
}

// Create inserts a new DeletionRecord into the PostgreSQL database.
func (p *PostgreSQLDeletionRecordRepository) Create(
	ctx context.Context,
	record *erasureDomain.DeletionRecord,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO deletion_records (id, actor_id, organization_id, path, method,
			  file_size, content_hash, passes_completed, verification_passed, failure_reason,
			  justification, erased_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.ActorID,
		record.OrganizationID,
		record.Path,
		string(record.Method),
		record.FileSize,
		record.ContentHash,
		record.PassesCompleted,
		record.VerificationPassed,
		record.FailureReason,
		record.Justification,
		record.ErasedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create deletion record")
	}

	return nil
}

// List retrieves deletion records for an organization ordered by erased_at
// descending (newest first) with pagination. Returns empty slice if no records found.
func (p *PostgreSQLDeletionRecordRepository) List(
	ctx context.Context,
	organizationID string,
	offset, limit int,
) ([]*erasureDomain.DeletionRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, actor_id, organization_id, path, method, file_size, content_hash,
			  passes_completed, verification_passed, failure_reason, justification, erased_at
			  FROM deletion_records
			  WHERE organization_id = $1
			  ORDER BY erased_at DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list deletion records")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	records := make([]*erasureDomain.DeletionRecord, 0)
	for rows.Next() {
		var record erasureDomain.DeletionRecord
		var method string

		err := rows.Scan(
			&record.ID,
			&record.ActorID,
			&record.OrganizationID,
			&record.Path,
			&method,
			&record.FileSize,
			&record.ContentHash,
			&record.PassesCompleted,
			&record.VerificationPassed,
			&record.FailureReason,
			&record.Justification,
			&record.ErasedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan deletion record")
		}

		record.Method = erasureDomain.Method(method)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate deletion records")
	}

	return records, nil
}

// NewPostgreSQLDeletionRecordRepository creates a new PostgreSQL DeletionRecord repository.
func NewPostgreSQLDeletionRecordRepository(db *sql.DB) *PostgreSQLDeletionRecordRepository {
	return &PostgreSQLDeletionRecordRepository{db: db}
}
