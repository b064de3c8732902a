// Package repository implements detection log persistence for PostgreSQL and
// MySQL. Logs carry pattern kinds and scores only, never scanned text.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/allisson/phiguard/internal/database"
	detectionDomain "github.com/allisson/phiguard/internal/detection/domain"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

// PostgreSQLDetectionLogRepository implements DetectionLog persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLDetectionLogRepository struct {
	db *sql.DB
}

// Create inserts a new DetectionLog into the PostgreSQL database. Detected types
// are stored as a JSON array.
func (p *PostgreSQLDetectionLogRepository) Create(
	ctx context.Context,
	log *detectionDomain.DetectionLog,
) error {
	querier := database.GetTx(ctx, p.db)

	detectedTypesJSON, err := json.Marshal(log.DetectedTypes)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal detected types")
	}

	query := `INSERT INTO detection_logs (id, actor_id, organization_id, detected_types,
			  confidence_score, match_count, quarantined, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = querier.ExecContext(
		ctx,
		query,
		log.ID,
		log.ActorID,
		log.OrganizationID,
		detectedTypesJSON,
		log.ConfidenceScore,
		log.MatchCount,
		log.Quarantined,
		log.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create detection log")
	}

	return nil
}

// List retrieves detection logs for an organization ordered by created_at
// descending (newest first) with pagination. Returns empty slice if no logs found.
func (p *PostgreSQLDetectionLogRepository) List(
	ctx context.Context,
	organizationID string,
	offset, limit int,
) ([]*detectionDomain.DetectionLog, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, actor_id, organization_id, detected_types, confidence_score,
			  match_count, quarantined, created_at
			  FROM detection_logs
			  WHERE organization_id = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list detection logs")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	logs := make([]*detectionDomain.DetectionLog, 0)
	for rows.Next() {
		var log detectionDomain.DetectionLog
		var detectedTypesJSON []byte

		err := rows.Scan(
			&log.ID,
			&log.ActorID,
			&log.OrganizationID,
			&detectedTypesJSON,
			&log.ConfidenceScore,
			&log.MatchCount,
			&log.Quarantined,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan detection log")
		}

		if err := json.Unmarshal(detectedTypesJSON, &log.DetectedTypes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal detected types")
		}

		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate detection logs")
	}

	return logs, nil
}

// NewPostgreSQLDetectionLogRepository creates a new PostgreSQL DetectionLog repository.
func NewPostgreSQLDetectionLogRepository(db *sql.DB) *PostgreSQLDetectionLogRepository {
	return &PostgreSQLDetectionLogRepository{db: db}
}
