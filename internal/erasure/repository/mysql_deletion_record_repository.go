package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/phiguard/internal/database"
	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

// MySQLDeletionRecordRepository implements DeletionRecord persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLDeletionRecordRepository struct {
	db *sql.DB
}

// Create inserts a new DeletionRecord into the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLDeletionRecordRepository) Create(
	ctx context.Context,
	record *erasureDomain.DeletionRecord,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal deletion record id")
	}

	query := `INSERT INTO deletion_records (id, actor_id, organization_id, path, method,
			  file_size, content_hash, passes_completed, verification_passed, failure_reason,
			  justification, erased_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
// descending (newest first) with pagination. UUIDs are stored as BINARY(16)
// and must be unmarshaled.
func (m *MySQLDeletionRecordRepository) List(
	ctx context.Context,
	organizationID string,
	offset, limit int,
) ([]*erasureDomain.DeletionRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, actor_id, organization_id, path, method, file_size, content_hash,
			  passes_completed, verification_passed, failure_reason, justification, erased_at
			  FROM deletion_records
			  WHERE organization_id = ?
			  ORDER BY erased_at DESC
			  LIMIT ? OFFSET ?`

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
		var idBinary []byte
		var method string

		err := rows.Scan(
			&idBinary,
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

		// Unmarshal UUID from BINARY(16)
		if err := record.ID.UnmarshalBinary(idBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal deletion record id")
		}

		record.Method = erasureDomain.Method(method)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate deletion records")
	}

	return records, nil
}

// NewMySQLDeletionRecordRepository creates a new MySQL DeletionRecord repository.
func NewMySQLDeletionRecordRepository(db *sql.DB) *MySQLDeletionRecordRepository {
	return &MySQLDeletionRecordRepository{db: db}
}
