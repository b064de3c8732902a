// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
)

// AuditEventResponse represents an audit event in API responses.
type AuditEventResponse struct {
	ID             string         `json:"id"`
	ActorID        string         `json:"actor_id"`
	OrganizationID string         `json:"organization_id"`
	Action         string         `json:"action"`
	Resource       string         `json:"resource"`
	ResourceID     string         `json:"resource_id,omitempty"`
	Details        map[string]any `json:"details,omitempty"`
	PHIAccessed    bool           `json:"phi_accessed"`
	EventKind      string         `json:"event_kind"`
	Justification  string         `json:"justification,omitempty"`
	SessionID      string         `json:"session_id,omitempty"`
	IPAddress      string         `json:"ip_address,omitempty"`
	UserAgent      string         `json:"user_agent,omitempty"`
	Severity       string         `json:"severity"`
	RetentionUntil time.Time      `json:"retention_until"`
	Encrypted      bool           `json:"encrypted"`
	CreatedAt      time.Time      `json:"created_at"`
}

// MapAuditEventToResponse converts a domain audit event to an API response.
func MapAuditEventToResponse(event *auditDomain.AuditEvent) AuditEventResponse {
	return AuditEventResponse{
		ID:             event.ID.String(),
		ActorID:        event.ActorID,
		OrganizationID: event.OrganizationID,
		Action:         event.Action,
		Resource:       event.Resource,
		ResourceID:     event.ResourceID,
		Details:        event.Details,
		PHIAccessed:    event.PHIAccessed,
		EventKind:      string(event.EventKind),
		Justification:  event.Justification,
		SessionID:      event.SessionID,
		IPAddress:      event.IPAddress,
		UserAgent:      event.UserAgent,
		Severity:       string(event.Severity),
		RetentionUntil: event.RetentionUntil,
		Encrypted:      event.Encrypted,
		CreatedAt:      event.CreatedAt,
	}
}

// ListAuditEventsResponse represents a paginated list of audit events in API responses.
type ListAuditEventsResponse struct {
	Data []AuditEventResponse `json:"data"`
}

// MapAuditEventsToListResponse converts a slice of domain audit events to a list API response.
func MapAuditEventsToListResponse(events []*auditDomain.AuditEvent) ListAuditEventsResponse {
	eventResponses := make([]AuditEventResponse, 0, len(events))
	for _, event := range events {
		eventResponses = append(eventResponses, MapAuditEventToResponse(event))
	}
	return ListAuditEventsResponse{
		Data: eventResponses,
	}
}
