package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/allisson/phiguard/internal/database"
	detectionDomain "github.com/allisson/phiguard/internal/detection/domain"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

// MySQLDetectionLogRepository implements DetectionLog persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLDetectionLogRepository struct {
	db *sql.DB
}

// Create inserts a new DetectionLog into the MySQL database using BINARY(16)
// for UUIDs. Detected types are stored as a JSON array.
func (m *MySQLDetectionLogRepository) Create(
	ctx context.Context,
	log *detectionDomain.DetectionLog,
) error {
	querier := database.GetTx(ctx, m.db)

	detectedTypesJSON, err := json.Marshal(log.DetectedTypes)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal detected types")
	}

	id, err := log.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal detection log id")
	}

	query := `INSERT INTO detection_logs (id, actor_id, organization_id, detected_types,
			  confidence_score, match_count, quarantined, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
// descending (newest first) with pagination. UUIDs are stored as BINARY(16)
// and must be unmarshaled.
func (m *MySQLDetectionLogRepository) List(
	ctx context.Context,
	organizationID string,
	offset, limit int,
) ([]*detectionDomain.DetectionLog, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, actor_id, organization_id, detected_types, confidence_score,
			  match_count, quarantined, created_at
			  FROM detection_logs
			  WHERE organization_id = ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

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
		var idBinary []byte
		var detectedTypesJSON []byte

		err := rows.Scan(
			&idBinary,
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

		// Unmarshal UUID from BINARY(16)
		if err := log.ID.UnmarshalBinary(idBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal detection log id")
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

// NewMySQLDetectionLogRepository creates a new MySQL DetectionLog repository.
func NewMySQLDetectionLogRepository(db *sql.DB) *MySQLDetectionLogRepository {
	return &MySQLDetectionLogRepository{db: db}
}
