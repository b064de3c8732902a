// Package domain defines the domain model for sensitive-content detection:
// pattern kinds, matches, verdicts, and the confidence policy that decides
// quarantine and audit escalation.
package domain

// PatternKind names a class of sensitive identifier the catalog can detect.
type PatternKind string

// Supported pattern kinds.
const (
	KindSSN           PatternKind = "ssn"
	KindHealthPlanID  PatternKind = "health_plan_id"
	KindMRN           PatternKind = "mrn"
	KindDateOfBirth   PatternKind = "date_of_birth"
	KindPhone         PatternKind = "phone"
	KindEmail         PatternKind = "email"
	KindAddress       PatternKind = "address"
	KindDiagnosisCode PatternKind = "diagnosis_code"
	KindPrescription  PatternKind = "prescription"
)

// Match is one detector hit: the matched substring and its byte offset in the
// scanned text. MatchedText is never persisted verbatim; only redacted
// projections of a verdict reach any store.
type Match struct {
	Kind     PatternKind
	Text     string
	Position int
}

// highRiskBonus maps the highest-risk kinds to the fixed confidence increment
// their presence adds. A single hit on any of these dominates the score
// faster than volume of low-risk hits.
var highRiskBonus = map[PatternKind]float64{
	KindSSN:          0.4,
	KindMRN:          0.3,
	KindHealthPlanID: 0.3,
}

// HighRiskBonus returns the confidence bonus for a kind, or 0 for low-risk kinds.
func HighRiskBonus(kind PatternKind) float64 {
	return highRiskBonus[kind]
}
