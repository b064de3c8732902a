package dto

import (
	"time"

	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
)

// DeletionRecordResponse represents a deletion record in API responses.
type DeletionRecordResponse struct {
	ID                 string    `json:"id"`
	ActorID            string    `json:"actor_id"`
	OrganizationID     string    `json:"organization_id"`
	Path               string    `json:"path"`
	Method             string    `json:"method"`
	FileSize           int64     `json:"file_size"`
	ContentHash        string    `json:"content_hash,omitempty"`
	PassesCompleted    int       `json:"passes_completed"`
	VerificationPassed bool      `json:"verification_passed"`
	FailureReason      string    `json:"failure_reason,omitempty"`
	Justification      string    `json:"justification"`
	ErasedAt           time.Time `json:"erased_at"`
}

// MapDeletionRecordToResponse converts a domain deletion record to an API response.
func MapDeletionRecordToResponse(record *erasureDomain.DeletionRecord) DeletionRecordResponse {
	return DeletionRecordResponse{
		ID:                 record.ID.String(),
		ActorID:            record.ActorID,
		OrganizationID:     record.OrganizationID,
		Path:               record.Path,
		Method:             string(record.Method),
		FileSize:           record.FileSize,
		ContentHash:        record.ContentHash,
		PassesCompleted:    record.PassesCompleted,
		VerificationPassed: record.VerificationPassed,
		FailureReason:      record.FailureReason,
		Justification:      record.Justification,
		ErasedAt:           record.ErasedAt,
	}
}

// ListDeletionRecordsResponse represents a paginated list of deletion records in API responses.
type ListDeletionRecordsResponse struct {
	Data []DeletionRecordResponse `json:"data"`
}

// MapDeletionRecordsToListResponse converts a slice of domain deletion records to a list API response.
func MapDeletionRecordsToListResponse(records []*erasureDomain.DeletionRecord) ListDeletionRecordsResponse {
	recordResponses := make([]DeletionRecordResponse, 0, len(records))
	for _, record := range records {
		recordResponses = append(recordResponses, MapDeletionRecordToResponse(record))
	}
	return ListDeletionRecordsResponse{
		Data: recordResponses,
	}
}
