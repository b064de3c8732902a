package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	complianceUseCase "github.com/allisson/phiguard/internal/compliance/usecase"
)

// RunComplianceStatus prints the aggregated compliance posture for an
// organization. A non-compliant posture is reported in the output, not as a
// command error; the command only fails when the posture cannot be computed.
func RunComplianceStatus(
	ctx context.Context,
	useCase complianceUseCase.ComplianceUseCase,
	w io.Writer,
	organizationID string,
	format string,
) error {
	if organizationID == "" {
		return fmt.Errorf("organization id is required")
	}

	status, err := useCase.Status(ctx, organizationID)
	if err != nil {
		return fmt.Errorf("failed to compute compliance status: %w", err)
	}

	if format == "json" {
		result := map[string]interface{}{
			"organization_id": status.OrganizationID,
			"is_compliant":    status.IsCompliant,
			"findings":        status.Findings,
			"recommendations": status.Recommendations,
			"checked_at":      status.CheckedAt,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(jsonBytes))
		return nil
	}

	if status.IsCompliant {
		fmt.Fprintf(w, "Organization %s is COMPLIANT\n", status.OrganizationID)
		return nil
	}

	fmt.Fprintf(w, "Organization %s is NOT COMPLIANT\n", status.OrganizationID)
	fmt.Fprintln(w, "\nFindings:")
	for _, finding := range status.Findings {
		fmt.Fprintf(w, "  - %s\n", finding)
	}
	fmt.Fprintln(w, "\nRecommendations:")
	for _, recommendation := range status.Recommendations {
		fmt.Fprintf(w, "  - %s\n", recommendation)
	}

	return nil
}
