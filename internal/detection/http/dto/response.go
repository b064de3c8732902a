package dto

import (
	detectionDomain "github.com/allisson/phiguard/internal/detection/domain"
)

// ScanResponse represents a detection verdict in API responses. Matched text
// is deliberately not exposed: callers get kinds, positions, and scores only.
type ScanResponse struct {
	DetectedTypes   []string        `json:"detected_types"`
	ConfidenceScore float64         `json:"confidence_score"`
	MatchCount      int             `json:"match_count"`
	Matches         []MatchResponse `json:"matches"`
	Quarantined     bool            `json:"quarantined"`
}

// MatchResponse represents one detector hit in API responses.
type MatchResponse struct {
	Kind     string `json:"kind"`
	Position int    `json:"position"`
}

// MapVerdictToScanResponse converts a domain verdict to an API response.
func MapVerdictToScanResponse(verdict detectionDomain.DetectionVerdict) ScanResponse {
	detectedTypes := make([]string, 0, len(verdict.DetectedTypes))
	for _, kind := range verdict.DetectedTypes {
		detectedTypes = append(detectedTypes, string(kind))
	}

	matches := make([]MatchResponse, 0, len(verdict.Matches))
	for _, match := range verdict.Matches {
		matches = append(matches, MatchResponse{
			Kind:     string(match.Kind),
			Position: match.Position,
		})
	}

	return ScanResponse{
		DetectedTypes:   detectedTypes,
		ConfidenceScore: verdict.ConfidenceScore,
		MatchCount:      len(verdict.Matches),
		Matches:         matches,
		Quarantined:     verdict.Quarantined,
	}
}

// RedactResponse contains the redacted text.
type RedactResponse struct {
	Redacted string `json:"redacted"`
}
