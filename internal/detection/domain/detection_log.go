package domain

import (
	"time"

	"github.com/google/uuid"
)

// DetectionLog is the sanitized, persistable projection of a verdict.
// It records what kinds were found and how confident the scan was, never the
// matched text itself.
type DetectionLog struct {
	ID              uuid.UUID
	ActorID         string
	OrganizationID  string
	DetectedTypes   []PatternKind
	ConfidenceScore float64
	MatchCount      int
	Quarantined     bool
	CreatedAt       time.Time
}
