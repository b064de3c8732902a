// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	complianceDomain "github.com/allisson/phiguard/internal/compliance/domain"
)

// UpsertSettingRequest contains the value for a compliance setting.
type UpsertSettingRequest struct {
	Value string `json:"value"`
}

// Validate checks if the upsert setting request is valid.
func (r *UpsertSettingRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, validation.Required, validation.Length(1, 4096)),
	)
}

// SettingResponse represents a compliance setting in API responses.
type SettingResponse struct {
	OrganizationID string    `json:"organization_id"`
	Key            string    `json:"key"`
	Value          string    `json:"value"`
	UpdatedBy      string    `json:"updated_by"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MapSettingToResponse converts a domain setting to an API response.
func MapSettingToResponse(setting *complianceDomain.ComplianceSetting) SettingResponse {
	return SettingResponse{
		OrganizationID: setting.OrganizationID,
		Key:            setting.Key,
		Value:          setting.Value,
		UpdatedBy:      setting.UpdatedBy,
		UpdatedAt:      setting.UpdatedAt,
	}
}

// ListSettingsResponse represents a list of compliance settings in API responses.
type ListSettingsResponse struct {
	Data []SettingResponse `json:"data"`
}

// MapSettingsToListResponse converts a slice of domain settings to a list API response.
func MapSettingsToListResponse(settings []*complianceDomain.ComplianceSetting) ListSettingsResponse {
	settingResponses := make([]SettingResponse, 0, len(settings))
	for _, setting := range settings {
		settingResponses = append(settingResponses, MapSettingToResponse(setting))
	}
	return ListSettingsResponse{
		Data: settingResponses,
	}
}

// StatusResponse represents the aggregated compliance posture in API responses.
type StatusResponse struct {
	OrganizationID  string    `json:"organization_id"`
	IsCompliant     bool      `json:"is_compliant"`
	Findings        []string  `json:"findings"`
	Recommendations []string  `json:"recommendations"`
	CheckedAt       time.Time `json:"checked_at"`
}

// MapStatusToResponse converts a domain status to an API response.
func MapStatusToResponse(status *complianceDomain.ComplianceStatus) StatusResponse {
	return StatusResponse{
		OrganizationID:  status.OrganizationID,
		IsCompliant:     status.IsCompliant,
		Findings:        status.Findings,
		Recommendations: status.Recommendations,
		CheckedAt:       status.CheckedAt,
	}
}
