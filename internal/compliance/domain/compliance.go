// Package domain defines the compliance posture domain model: tunable
// settings and the aggregated status report.
package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	appvalidation "github.com/allisson/phiguard/internal/validation"
)

// Well-known setting keys.
const (
	SettingEncryptionRequired = "encryption_required"
	SettingAutoQuarantine     = "auto_quarantine"
	SettingBreachNotification = "breach_notification_contact"
)

// ComplianceSetting is one tunable compliance policy value, keyed per
// organization. Settings never weaken structural policy: the audit retention
// floor and mandatory encryption are enforced in code, not here.
type ComplianceSetting struct {
	OrganizationID string
	Key            string
	Value          string
	UpdatedBy      string
	UpdatedAt      time.Time
}

// ComplianceSettingInput carries the caller-supplied fields of a setting
// upsert. UpdatedBy is the actor performing the change, taken from the access
// gate, never from the request body.
type ComplianceSettingInput struct {
	OrganizationID string
	Key            string
	Value          string
	UpdatedBy      string
}

// Validate checks the input fields against the domain rules.
func (i *ComplianceSettingInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.OrganizationID, validation.Required, validation.Length(1, 255)),
		validation.Field(&i.Key,
			validation.Required,
			appvalidation.NotBlank,
			appvalidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&i.Value, validation.Required, validation.Length(1, 4096)),
		validation.Field(&i.UpdatedBy, validation.Required, validation.Length(1, 255)),
	)
	return appvalidation.WrapValidationError(err)
}

// ComplianceStatus is the aggregated posture report for an organization.
// IsCompliant is true only when no findings exist.
type ComplianceStatus struct {
	OrganizationID  string
	IsCompliant     bool
	Findings        []string
	Recommendations []string
	CheckedAt       time.Time
}
