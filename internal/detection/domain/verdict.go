package domain

import (
	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
)

// Confidence policy constants. These are the single definition of each
// threshold; call sites never restate the literals.
const (
	// MatchWeight is the confidence contribution of each individual match.
	MatchWeight = 0.15

	// DefaultQuarantineThreshold quarantines content whose confidence is
	// strictly greater than this value. Overridable via configuration.
	DefaultQuarantineThreshold = 0.7

	// AuditThreshold is the confidence above which a scan emits an audit
	// event with PHIAccessed set.
	AuditThreshold = 0.5

	// HighSeverityThreshold is the confidence above which that audit event
	// escalates to high severity.
	HighSeverityThreshold = 0.8
)

// DetectionVerdict is the aggregated result of running every detector over a
// text. Verdicts are not persisted directly; a sanitized projection
// (DetectionLog) is what reaches the store.
type DetectionVerdict struct {
	// DetectedTypes lists the distinct kinds with at least one match, in
	// catalog order.
	DetectedTypes []PatternKind
	// ConfidenceScore is in [0, 1].
	ConfidenceScore float64
	// Matches holds every hit from every detector, in text order per detector.
	Matches []Match
	// Quarantined reports whether the confidence exceeded the quarantine
	// threshold in force during the scan.
	Quarantined bool
}

// HasDetections reports whether any detector matched.
func (v *DetectionVerdict) HasDetections() bool {
	return len(v.DetectedTypes) > 0
}

// Confidence computes the classification confidence for a set of matches:
// MatchWeight per match plus the fixed high-risk bonus for each distinct
// high-risk kind present, clamped to [0, 1]. Adding a match never decreases
// the result.
func Confidence(matches []Match) float64 {
	score := MatchWeight * float64(len(matches))

	seen := make(map[PatternKind]bool, len(matches))
	for _, m := range matches {
		if !seen[m.Kind] {
			seen[m.Kind] = true
			score += HighRiskBonus(m.Kind)
		}
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

// ShouldQuarantine reports whether a confidence score exceeds the threshold.
// Strictly greater-than: a score exactly at the threshold is not quarantined.
func ShouldQuarantine(score, threshold float64) bool {
	return score > threshold
}

// ShouldAudit reports whether a scan with this confidence must emit an audit
// event with PHIAccessed set.
func ShouldAudit(score float64) bool {
	return score > AuditThreshold
}

// SeverityForConfidence maps a detection confidence to an audit severity.
// This is the one definition of the escalation policy.
func SeverityForConfidence(score float64) auditDomain.Severity {
	switch {
	case score > HighSeverityThreshold:
		return auditDomain.SeverityHigh
	case score > AuditThreshold:
		return auditDomain.SeverityMedium
	default:
		return auditDomain.SeverityLow
	}
}
