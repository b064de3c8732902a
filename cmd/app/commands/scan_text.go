package commands

import (
	"encoding/json"
	"fmt"
	"io"

	detectionService "github.com/allisson/phiguard/internal/detection/service"
)

// RunScanText classifies a piece of text for sensitive identifiers and prints
// the verdict. Runs entirely in-process against the pattern catalog: nothing
// is persisted and no audit event is written, which makes it safe for
// operators to probe content before it enters the system.
//
// The raw matched text is never printed; only pattern kinds, positions and
// scores appear in the output. Pass redact to print the redacted text instead
// of the verdict.
func RunScanText(
	w io.Writer,
	scanner *detectionService.Scanner,
	text string,
	redact bool,
	format string,
) error {
	if text == "" {
		return fmt.Errorf("text must not be empty")
	}

	if redact {
		fmt.Fprintln(w, scanner.Redact(text))
		return nil
	}

	verdict := scanner.Scan(text)

	detectedTypes := make([]string, 0, len(verdict.DetectedTypes))
	for _, kind := range verdict.DetectedTypes {
		detectedTypes = append(detectedTypes, string(kind))
	}

	if format == "json" {
		result := map[string]interface{}{
			"detected_types":   detectedTypes,
			"confidence_score": verdict.ConfidenceScore,
			"match_count":      len(verdict.Matches),
			"quarantined":      verdict.Quarantined,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(jsonBytes))
		return nil
	}

	if !verdict.HasDetections() {
		fmt.Fprintln(w, "No sensitive content detected")
		return nil
	}

	fmt.Fprintf(w, "Detected types:   %v\n", detectedTypes)
	fmt.Fprintf(w, "Confidence score: %.2f\n", verdict.ConfidenceScore)
	fmt.Fprintf(w, "Match count:      %d\n", len(verdict.Matches))
	fmt.Fprintf(w, "Quarantined:      %t\n", verdict.Quarantined)

	return nil
}
