// Package usecase implements business logic orchestration for compliance
// posture reporting and settings.
package usecase

import (
	"context"

	complianceDomain "github.com/allisson/phiguard/internal/compliance/domain"
)

// ComplianceUseCase exposes the compliance posture operations.
type ComplianceUseCase interface {
	// Status aggregates the compliance posture of an organization: structural
	// checks (master secret, retention) plus evidence checks (audit history).
	Status(ctx context.Context, organizationID string) (*complianceDomain.ComplianceStatus, error)

	// UpsertSetting creates or replaces one compliance setting.
	UpsertSetting(
		ctx context.Context,
		input *complianceDomain.ComplianceSettingInput,
	) (*complianceDomain.ComplianceSetting, error)

	// ListSettings retrieves all settings for an organization.
	ListSettings(ctx context.Context, organizationID string) ([]*complianceDomain.ComplianceSetting, error)
}

// ComplianceSettingRepository persists compliance settings.
type ComplianceSettingRepository interface {
	Upsert(ctx context.Context, setting *complianceDomain.ComplianceSetting) error
	List(ctx context.Context, organizationID string) ([]*complianceDomain.ComplianceSetting, error)
}

// AuditCounter reports how much audit history an organization has.
type AuditCounter interface {
	CountByOrganization(ctx context.Context, organizationID string) (int64, error)
}
