package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	detectionDomain "github.com/allisson/phiguard/internal/detection/domain"
)

func TestScanner_Scan(t *testing.T) {
	scanner := NewScanner(detectionDomain.DefaultQuarantineThreshold)

	t.Run("clean text yields empty verdict", func(t *testing.T) {
		verdict := scanner.Scan("the patient was discharged in good condition")

		assert.False(t, verdict.HasDetections())
		assert.Empty(t, verdict.Matches)
		assert.Equal(t, 0.0, verdict.ConfidenceScore)
		assert.False(t, verdict.Quarantined)
	})

	t.Run("ssn and phone scenario", func(t *testing.T) {
		verdict := scanner.Scan("SSN: 123-45-6789, call 555-123-4567")

		assert.ElementsMatch(t,
			[]detectionDomain.PatternKind{detectionDomain.KindSSN, detectionDomain.KindPhone},
			verdict.DetectedTypes,
		)
		require.Len(t, verdict.Matches, 2)
		assert.GreaterOrEqual(t, verdict.ConfidenceScore, 0.55)
		assert.False(t, verdict.Quarantined)
	})

	t.Run("match carries text and position", func(t *testing.T) {
		text := "id 123-45-6789 on file"
		verdict := scanner.Scan(text)

		require.Len(t, verdict.Matches, 1)
		match := verdict.Matches[0]
		assert.Equal(t, detectionDomain.KindSSN, match.Kind)
		assert.Equal(t, "123-45-6789", match.Text)
		assert.Equal(t, 3, match.Position)
	})

	t.Run("high confidence content is quarantined", func(t *testing.T) {
		text := "SSN: 123-45-6789 MRN: 12345678 plan 1EG4-TE5-MK72"
		verdict := scanner.Scan(text)

		assert.Contains(t, verdict.DetectedTypes, detectionDomain.KindSSN)
		assert.Contains(t, verdict.DetectedTypes, detectionDomain.KindMRN)
		assert.Contains(t, verdict.DetectedTypes, detectionDomain.KindHealthPlanID)
		assert.True(t, verdict.Quarantined)
	})

	t.Run("detects contact kinds", func(t *testing.T) {
		text := "reach jane.doe@example.org or (555) 123-4567 at 42 Oak Street"
		verdict := scanner.Scan(text)

		assert.Contains(t, verdict.DetectedTypes, detectionDomain.KindEmail)
		assert.Contains(t, verdict.DetectedTypes, detectionDomain.KindPhone)
		assert.Contains(t, verdict.DetectedTypes, detectionDomain.KindAddress)
	})

	t.Run("detects clinical kinds", func(t *testing.T) {
		text := "dx E11.9, DOB: 01/02/1990, refill 12345-6789-01"
		verdict := scanner.Scan(text)

		assert.Contains(t, verdict.DetectedTypes, detectionDomain.KindDiagnosisCode)
		assert.Contains(t, verdict.DetectedTypes, detectionDomain.KindDateOfBirth)
		assert.Contains(t, verdict.DetectedTypes, detectionDomain.KindPrescription)
	})

	t.Run("ssn is not misread as phone", func(t *testing.T) {
		verdict := scanner.Scan("SSN: 123-45-6789")

		assert.Equal(t,
			[]detectionDomain.PatternKind{detectionDomain.KindSSN},
			verdict.DetectedTypes,
		)
	})
}

func TestScanner_Redact(t *testing.T) {
	scanner := NewScanner(detectionDomain.DefaultQuarantineThreshold)

	t.Run("ssn and phone scenario", func(t *testing.T) {
		got := scanner.Redact("SSN: 123-45-6789, call 555-123-4567")
		assert.Equal(t, "SSN: [SSN_REDACTED], call [PHONE_REDACTED]", got)
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{
			"SSN: 123-45-6789, call 555-123-4567",
			"MRN: 12345678 dx E11.9 jane@example.org",
			"no sensitive content here",
			"DOB: 01/02/1990 at 42 Oak Street",
		}
		for _, text := range inputs {
			once := scanner.Redact(text)
			twice := scanner.Redact(once)
			assert.Equal(t, once, twice, "input %q", text)
		}
	})

	t.Run("leaves clean text untouched", func(t *testing.T) {
		text := "the patient was discharged in good condition"
		assert.Equal(t, text, scanner.Redact(text))
	})
}

func TestScanner_SanitizeValue(t *testing.T) {
	scanner := NewScanner(detectionDomain.DefaultQuarantineThreshold)

	t.Run("string", func(t *testing.T) {
		got := scanner.SanitizeValue("ssn 123-45-6789")
		assert.Equal(t, "ssn [SSN_REDACTED]", got)
	})

	t.Run("nested map and slice", func(t *testing.T) {
		details := map[string]any{
			"note":  "call 555-123-4567",
			"count": 3,
			"tags":  []string{"MRN: 12345678", "routine"},
			"inner": map[string]any{
				"contact": []any{"jane@example.org", 42},
			},
		}

		got := scanner.SanitizeValue(details).(map[string]any)

		assert.Equal(t, "call [PHONE_REDACTED]", got["note"])
		assert.Equal(t, 3, got["count"])
		assert.Equal(t, []string{"[MRN_REDACTED]", "routine"}, got["tags"])
		inner := got["inner"].(map[string]any)
		assert.Equal(t, []any{"[EMAIL_REDACTED]", 42}, inner["contact"])
	})

	t.Run("non-string scalars pass through", func(t *testing.T) {
		assert.Equal(t, 12, scanner.SanitizeValue(12))
		assert.Equal(t, true, scanner.SanitizeValue(true))
		assert.Nil(t, scanner.SanitizeValue(nil))
	})
}

func TestNewScanner_ThresholdFallback(t *testing.T) {
	scanner := NewScanner(0)
	assert.Equal(t, detectionDomain.DefaultQuarantineThreshold, scanner.QuarantineThreshold())

	custom := NewScanner(0.9)
	assert.Equal(t, 0.9, custom.QuarantineThreshold())
}
