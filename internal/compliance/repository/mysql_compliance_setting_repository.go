package repository

import (
	"context"
	"database/sql"

	complianceDomain "github.com/allisson/phiguard/internal/compliance/domain"
	"github.com/allisson/phiguard/internal/database"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

// MySQLComplianceSettingRepository implements ComplianceSetting persistence for MySQL.
// Uses transaction support via database.GetTx().
type MySQLComplianceSettingRepository struct {
	db *sql.DB
}

// Upsert inserts a setting or replaces its value when the (organization_id, key)
// pair already exists.
func (m *MySQLComplianceSettingRepository) Upsert(
	ctx context.Context,
	setting *complianceDomain.ComplianceSetting,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO compliance_settings (organization_id, setting_key, value, updated_by, updated_at)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE value = VALUES(value), updated_by = VALUES(updated_by),
			  updated_at = VALUES(updated_at)`

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
func (m *MySQLComplianceSettingRepository) List(
	ctx context.Context,
	organizationID string,
) ([]*complianceDomain.ComplianceSetting, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT organization_id, setting_key, value, updated_by, updated_at
			  FROM compliance_settings
			  WHERE organization_id = ?
			  ORDER BY setting_key ASC`

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

// NewMySQLComplianceSettingRepository creates a new MySQL ComplianceSetting repository.
func NewMySQLComplianceSettingRepository(db *sql.DB) *MySQLComplianceSettingRepository {
	return &MySQLComplianceSettingRepository{db: db}
}
