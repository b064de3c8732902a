// Package service implements the sensitive-content scanner: a fixed catalog of
// pattern detectors, verdict aggregation, and the redaction routine that is the
// single choke point for anything heading into the audit store.
package service

import (
	"regexp"

	detectionDomain "github.com/allisson/phiguard/internal/detection/domain"
)

// Detector is one named pattern with its redaction placeholder. Detectors are
// pure: running one has no effect beyond CPU use, and the compiled patterns
// are safe for concurrent use.
type Detector struct {
	Kind        detectionDomain.PatternKind
	Pattern     *regexp.Regexp
	Placeholder string
}

// catalog is the fixed set of detectors, in the order they run and redact.
//
// Placeholders intentionally contain no digits and no '@', so no placeholder
// can itself match any detector: redaction is idempotent by construction.
var catalog = []Detector{
	{
		Kind:        detectionDomain.KindSSN,
		Pattern:     regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		Placeholder: "[SSN_REDACTED]",
	},
	{
		// Medicare Beneficiary Identifier, dashed or undashed.
		Kind:        detectionDomain.KindHealthPlanID,
		Pattern:     regexp.MustCompile(`\b[1-9][A-Z][A-Z0-9]\d-?[A-Z][A-Z0-9]\d-?[A-Z]{2}\d{2}\b`),
		Placeholder: "[HEALTH_PLAN_ID_REDACTED]",
	},
	{
		Kind:        detectionDomain.KindMRN,
		Pattern:     regexp.MustCompile(`(?i)\bMRN[:#\s]\s*\d{6,10}\b`),
		Placeholder: "[MRN_REDACTED]",
	},
	{
		Kind:        detectionDomain.KindDateOfBirth,
		Pattern:     regexp.MustCompile(`(?i)\b(?:DOB|date of birth)[:\s]\s*\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
		Placeholder: "[DOB_REDACTED]",
	},
	{
		Kind:        detectionDomain.KindPhone,
		Pattern:     regexp.MustCompile(`(?:\+?1[-.\s])?(?:\(\d{3}\)\s*|\b\d{3}[-.\s])\d{3}[-.\s]\d{4}\b`),
		Placeholder: "[PHONE_REDACTED]",
	},
	{
		Kind:        detectionDomain.KindEmail,
		Pattern:     regexp.MustCompile(`\b[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}\b`),
		Placeholder: "[EMAIL_REDACTED]",
	},
	{
		Kind: detectionDomain.KindAddress,
		Pattern: regexp.MustCompile(
			`(?i)\b\d{1,5}\s+(?:[A-Za-z0-9.]+\s+){1,4}(?:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln|drive|dr|court|ct|way)\b`,
		),
		Placeholder: "[ADDRESS_REDACTED]",
	},
	{
		// ICD-10 codes in dotted form (e.g. E11.9). The undotted form is too
		// noisy to match safely in free text.
		Kind:        detectionDomain.KindDiagnosisCode,
		Pattern:     regexp.MustCompile(`\b[A-TV-Z]\d{2}\.[0-9A-Z]{1,4}\b`),
		Placeholder: "[DIAGNOSIS_CODE_REDACTED]",
	},
	{
		// NDC numbers (5-4-2) and prescription reference numbers.
		Kind:        detectionDomain.KindPrescription,
		Pattern:     regexp.MustCompile(`(?i)\b(?:\d{5}-\d{4}-\d{2}|rx[:#\s]\s*\d{6,10})\b`),
		Placeholder: "[PRESCRIPTION_REDACTED]",
	},
}

// Catalog returns the fixed detector set.
func Catalog() []Detector {
	return catalog
}
