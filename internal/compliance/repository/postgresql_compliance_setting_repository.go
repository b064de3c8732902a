// Package repository implements compliance setting persistence for PostgreSQL
// and MySQL. Settings are keyed per organization and replaced on conflict.
package repository

import (
	"context"
	"database/sql"

	complianceDomain "github.com/allisson/phiguard/internal/compliance/domain"
	"github.com/allisson/phiguard/internal/database"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

// PostgreSQLComplianceSettingRepository implements ComplianceSetting persistence for PostgreSQL.
// Uses transaction support via database.GetTx().
type PostgreSQLComplianceSettingRepository struct {
	db *sql.DB
}

// Upsert inserts a setting or replaces its value when the (organization_id, key)
// pair already exists.
func (p *PostgreSQLComplianceSettingRepository) Upsert(
	ctx context.Context,
	setting *complianceDomain.ComplianceSetting,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO compliance_settings (organization_id, key, value, updated_by, updated_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (organization_id, key)
			  DO UPDATE SET value = EXCLUDED.value, updated_by = EXCLUDED.updated_by,
			  updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		setting.OrganizationID,
		setting.Key,
		setting.Value,
		setting.UpdatedBy,
		setting.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert compliance setting")
	}

	return nil
}

// List retrieves all settings for an organization ordered by key.
func (p *PostgreSQLComplianceSettingRepository) List(
	ctx context.Context,
	organizationID string,
) ([]*complianceDomain.ComplianceSetting, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT organization_id, key, value, updated_by, updated_at
			  FROM compliance_settings
			  WHERE organization_id = $1
			  ORDER BY key ASC`

	rows, err := querier.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list compliance settings")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	settings := make([]*complianceDomain.ComplianceSetting, 0)
	for rows.Next() {
		var setting complianceDomain.ComplianceSetting

		err := rows.Scan(
			&setting.OrganizationID,
			&setting.Key,
			&setting.Value,
			&setting.UpdatedBy,
			&setting.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan compliance setting")
		}

		settings = append(settings, &setting)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate compliance settings")
	}

	return settings, nil
}

// NewPostgreSQLComplianceSettingRepository creates a new PostgreSQL ComplianceSetting repository.
func NewPostgreSQLComplianceSettingRepository(db *sql.DB) *PostgreSQLComplianceSettingRepository {
	return &PostgreSQLComplianceSettingRepository{db: db}
}
