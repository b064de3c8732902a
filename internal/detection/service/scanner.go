package service

import (
	detectionDomain "github.com/allisson/phiguard/internal/detection/domain"
)

// Scanner runs the pattern catalog over text and aggregates matches into a
// classification verdict. Stateless apart from the configured quarantine
// threshold; safe for concurrent use.
type Scanner struct {
	detectors           []Detector
	quarantineThreshold float64
}

// NewScanner creates a scanner with the given quarantine threshold. A
// non-positive threshold falls back to the default policy value.
func NewScanner(quarantineThreshold float64) *Scanner {
	if quarantineThreshold <= 0 {
		quarantineThreshold = detectionDomain.DefaultQuarantineThreshold
	}
	return &Scanner{
		detectors:           Catalog(),
		quarantineThreshold: quarantineThreshold,
	}
}

// QuarantineThreshold returns the threshold in force for this scanner.
func (s *Scanner) QuarantineThreshold() float64 {
	return s.quarantineThreshold
}

// Scan runs every detector independently over the full text and aggregates
// the union of all matches into a verdict.
func (s *Scanner) Scan(text string) detectionDomain.DetectionVerdict {
	var matches []detectionDomain.Match
	var detectedTypes []detectionDomain.PatternKind

	for _, d := range s.detectors {
		locations := d.Pattern.FindAllStringIndex(text, -1)
		if len(locations) == 0 {
			continue
		}
		detectedTypes = append(detectedTypes, d.Kind)
		for _, loc := range locations {
			matches = append(matches, detectionDomain.Match{
				Kind:     d.Kind,
				Text:     text[loc[0]:loc[1]],
				Position: loc[0],
			})
		}
	}

	score := detectionDomain.Confidence(matches)

	return detectionDomain.DetectionVerdict{
		DetectedTypes:   detectedTypes,
		ConfidenceScore: score,
		Matches:         matches,
		Quarantined:     detectionDomain.ShouldQuarantine(score, s.quarantineThreshold),
	}
}

// Redact replaces every matched span from every detector with its per-kind
// placeholder. Placeholders never match any detector, so Redact is
// idempotent. All text heading into the audit store passes through here.
func (s *Scanner) Redact(text string) string {
	for _, d := range s.detectors {
		text = d.Pattern.ReplaceAllLiteralString(text, d.Placeholder)
	}
	return text
}

// SanitizeValue recursively sanitizes a details value: strings are redacted,
// maps and slices are sanitized element-wise, everything else passes through
// unchanged.
func (s *Scanner) SanitizeValue(value any) any {
	switch v := value.(type) {
	case string:
		return s.Redact(v)
	case map[string]any:
		sanitized := make(map[string]any, len(v))
		for key, elem := range v {
			sanitized[key] = s.SanitizeValue(elem)
		}
		return sanitized
	case []any:
		sanitized := make([]any, len(v))
		for i, elem := range v {
			sanitized[i] = s.SanitizeValue(elem)
		}
		return sanitized
	case []string:
		sanitized := make([]string, len(v))
		for i, elem := range v {
			sanitized[i] = s.Redact(elem)
		}
		return sanitized
	default:
		return value
	}
}
